package inventory

type Quantity struct {
	value int
}

func NewQuantity(n int) (Quantity, error) {
	if n <= 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: n}, nil
}

func (q Quantity) Value() int { return q.value }
