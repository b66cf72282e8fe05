package production

import "errors"

var (
	ErrEmptyCreator         = errors.New("created by cannot be empty")
	ErrMissingScheduledDate = errors.New("scheduled date is required")
	ErrInvalidStatus        = errors.New("invalid production order status")
)

type Status string

// Only StatusScheduled is produced by this service; the others are set downstream.
const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
