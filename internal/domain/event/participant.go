package event

import (
	"strings"
	"time"
)

// Participant is one entry of an event's participant set. Entries are keyed by
// user id only; name and joinedAt never take part in matching.
type Participant struct {
	userID   string
	name     string
	joinedAt time.Time
}

func NewParticipant(userID, name string, now time.Time) (Participant, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Participant{}, ErrEmptyUserID
	}
	return Participant{
		userID:   userID,
		name:     strings.TrimSpace(name),
		joinedAt: now,
	}, nil
}

func ReconstructParticipant(userID, name string, joinedAt time.Time) Participant {
	return Participant{userID: userID, name: name, joinedAt: joinedAt}
}

func (p Participant) UserID() string      { return p.userID }
func (p Participant) Name() string        { return p.name }
func (p Participant) JoinedAt() time.Time { return p.joinedAt }
