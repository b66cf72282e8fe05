package directory

import "errors"

var ErrUnknownKind = errors.New("unknown profile kind")

// Kind names the collection a profile lives in.
type Kind string

const (
	KindSpecialist Kind = "specialist"
	KindUser       Kind = "user"
)

func (k Kind) IsValid() bool {
	return k == KindSpecialist || k == KindUser
}

// Priority says which source answered a lookup.
type Priority string

const (
	PrimaryRecord  Priority = "primary"
	FallbackRecord Priority = "fallback"
)

// Profile is the read model shared by every directory source.
type Profile struct {
	ID          string
	DisplayName string
	Email       string
	Kind        Kind
	Priority    Priority
}

// Name falls back to the email when no display name is stored.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}

// DefaultOrder is the lookup order used when no other order is configured.
func DefaultOrder() []Kind {
	return []Kind{KindSpecialist, KindUser}
}
