package user

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRole   = errors.New("invalid role")
	ErrEmptyIdentity = errors.New("user id cannot be empty")
)

// ID is the identity-provider subject of a user.
type ID struct {
	value string
}

func NewID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}, ErrEmptyIdentity
	}
	return ID{value: s}, nil
}

func (id ID) String() string { return id.value }
