package queries

//go:generate mockgen -source=participation.go -destination=../../../tests/mock/queries/participation.go -package=queriesmock

import (
	"context"
	"strings"

	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"
)

type ParticipationQueries interface {
	// IsParticipating is false, never an error, for a missing event or an event without participants.
	IsParticipating(ctx context.Context, eventID, userID string) (bool, error)
	ListParticipants(ctx context.Context, eventID string) (*EventParticipantsView, error)
}

type participationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewParticipationQueries(uow shared.UnitOfWork) ParticipationQueries {
	return &participationQueriesImpl{uow: uow}
}

func (q *participationQueriesImpl) IsParticipating(ctx context.Context, eventID, userID string) (bool, error) {
	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	if eventID == "" || userID == "" {
		return false, nil
	}

	var found bool
	err := q.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Events().HasParticipant(ctx, eventID, userID)
		return err
	})
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return false, nil
		}
		return false, errs.Wrapf(err, "check participation in event %s", eventID)
	}
	return found, nil
}

func (q *participationQueriesImpl) ListParticipants(ctx context.Context, eventID string) (*EventParticipantsView, error) {
	var view *EventParticipantsView
	err := q.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		ev, err := tx.Events().Get(ctx, eventID)
		if err != nil {
			return err
		}
		view = &EventParticipantsView{
			EventID:      ev.ID(),
			Title:        ev.Title(),
			Participants: make([]ParticipantView, 0, ev.Count()),
		}
		for _, p := range ev.Participants() {
			view.Participants = append(view.Participants, ParticipantView{
				UserID:   p.UserID(),
				Name:     p.Name(),
				JoinedAt: p.JoinedAt(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errs.Wrapf(err, "list participants of event %s", eventID)
	}
	return view, nil
}
