//go:build unit

package event_test

import (
	"testing"
	"time"

	"commerce-booking/internal/domain/event"
	"commerce-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventParticipants(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("joining twice keeps one entry", func(t *testing.T) {
		e, err := builder.NewEventBuilder().BuildDomain()
		require.NoError(t, err)

		first, _ := event.NewParticipant("u1", "Ana", t0)
		second, _ := event.NewParticipant("u1", "Ana", t0.Add(time.Minute))

		assert.True(t, e.Join(first))
		assert.False(t, e.Join(second))
		assert.Equal(t, 1, e.Count())

		kept, ok := e.Participant("u1")
		require.True(t, ok)
		assert.Equal(t, t0, kept.JoinedAt())
	})

	t.Run("leave matches on user id only", func(t *testing.T) {
		e, _ := builder.NewEventBuilder().WithParticipant("u1", "Ana", t0).BuildDomain()

		assert.True(t, e.Leave("u1"))
		assert.False(t, e.Has("u1"))
		assert.False(t, e.Leave("u1"))
		assert.Zero(t, e.Count())
	})

	t.Run("participants are ordered by join time", func(t *testing.T) {
		e, _ := builder.NewEventBuilder().
			WithParticipant("u2", "Bogdan", t0.Add(time.Hour)).
			WithParticipant("u1", "Ana", t0).
			WithParticipant("u3", "Cristi", t0).
			BuildDomain()

		var ids []string
		for _, p := range e.Participants() {
			ids = append(ids, p.UserID())
		}
		assert.Equal(t, []string{"u1", "u3", "u2"}, ids)
	})

	t.Run("reconstruct drops duplicate user ids", func(t *testing.T) {
		e := event.Reconstruct("e1", "", []event.Participant{
			event.ReconstructParticipant("u1", "Ana", t0),
			event.ReconstructParticipant("u1", "Ana", t0.Add(time.Second)),
		})
		assert.Equal(t, 1, e.Count())
	})

	t.Run("blank ids are rejected", func(t *testing.T) {
		_, err := event.NewParticipant(" ", "Ana", t0)
		assert.ErrorIs(t, err, event.ErrEmptyUserID)

		_, err = builder.NewEventBuilder().WithID("").BuildDomain()
		assert.ErrorIs(t, err, event.ErrEmptyEventID)
	})
}
