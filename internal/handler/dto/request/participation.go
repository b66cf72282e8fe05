package request

// An omitted name is resolved from the participant directory.
type JoinEventRequest struct {
	Name string `json:"name" binding:"max=200"`
}
