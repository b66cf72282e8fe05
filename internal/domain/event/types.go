package event

import "errors"

var (
	ErrEmptyEventID = errors.New("event id cannot be empty")
	ErrEmptyUserID  = errors.New("participant user id cannot be empty")
)
