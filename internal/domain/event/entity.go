package event

import (
	"sort"
	"strings"
)

type Event struct {
	id           string
	title        string
	participants map[string]Participant
}

func NewEvent(id, title string) (*Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyEventID
	}
	return &Event{
		id:           id,
		title:        title,
		participants: make(map[string]Participant),
	}, nil
}

// Reconstruct rebuilds an event read from the store. Later duplicates of a user id are dropped.
func Reconstruct(id, title string, participants []Participant) *Event {
	e := &Event{
		id:           id,
		title:        title,
		participants: make(map[string]Participant, len(participants)),
	}
	for _, p := range participants {
		e.Join(p)
	}
	return e
}

// Join adds p unless its user is already present. The existing entry is kept as is.
func (e *Event) Join(p Participant) bool {
	if p.userID == "" {
		return false
	}
	if _, ok := e.participants[p.userID]; ok {
		return false
	}
	e.participants[p.userID] = p
	return true
}

func (e *Event) Leave(userID string) bool {
	if _, ok := e.participants[userID]; !ok {
		return false
	}
	delete(e.participants, userID)
	return true
}

func (e *Event) Has(userID string) bool {
	_, ok := e.participants[userID]
	return ok
}

func (e *Event) Participant(userID string) (Participant, bool) {
	p, ok := e.participants[userID]
	return p, ok
}

// Participants is ordered by join time, then user id.
func (e *Event) Participants() []Participant {
	out := make([]Participant, 0, len(e.participants))
	for _, p := range e.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].joinedAt.Equal(out[j].joinedAt) {
			return out[i].joinedAt.Before(out[j].joinedAt)
		}
		return out[i].userID < out[j].userID
	})
	return out
}

func (e *Event) ID() string    { return e.id }
func (e *Event) Title() string { return e.title }
func (e *Event) Count() int    { return len(e.participants) }
