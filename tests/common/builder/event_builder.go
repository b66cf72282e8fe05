//go:build unit || e2e

package builder

import (
	"time"

	"commerce-booking/internal/domain/event"
)

type EventBuilder struct {
	ID           string
	Title        string
	Participants []event.Participant
}

func NewEventBuilder() *EventBuilder {
	return &EventBuilder{
		ID:    "e1",
		Title: "Atelier de primăvară",
	}
}

func (b *EventBuilder) With(mutate func(*EventBuilder)) *EventBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *EventBuilder) BuildDomain() (*event.Event, error) {
	e, err := event.NewEvent(b.ID, b.Title)
	if err != nil {
		return nil, err
	}
	for _, p := range b.Participants {
		e.Join(p)
	}
	return e, nil
}

// Fluent builder methods
func (b *EventBuilder) WithID(id string) *EventBuilder {
	b.ID = id
	return b
}

func (b *EventBuilder) WithTitle(title string) *EventBuilder {
	b.Title = title
	return b
}

func (b *EventBuilder) WithParticipant(userID, name string, joinedAt time.Time) *EventBuilder {
	b.Participants = append(b.Participants, event.ReconstructParticipant(userID, name, joinedAt))
	return b
}
