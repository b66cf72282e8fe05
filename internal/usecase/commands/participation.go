package commands

//go:generate mockgen -source=participation.go -destination=../../../tests/mock/commands/participation.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strings"

	"commerce-booking/internal/domain/event"
	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"
)

const (
	ActionParticipate = "participate"
	ActionCancel      = "cancel"
)

// ParticipationCommands changes an event's participant set. Each call is a single
// atomic store update keyed by user id; no multi-document transaction is opened.
type ParticipationCommands interface {
	Participate(ctx context.Context, eventID, userID, userName string) error
	// CancelParticipation matches on userID only. userName is accepted for
	// caller symmetry and logged.
	CancelParticipation(ctx context.Context, eventID, userID, userName string) error
}

type participationUseCaseImpl struct {
	uow      shared.UnitOfWork
	profiles ProfileLookup
	notifier Notifier
	metrics  Metrics
	clock    clock.Clock
}

func NewParticipationUseCase(
	uow shared.UnitOfWork,
	profiles ProfileLookup,
	notifier Notifier,
	metrics Metrics,
	clk clock.Clock,
) ParticipationCommands {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &participationUseCaseImpl{
		uow:      uow,
		profiles: profiles,
		notifier: notifier,
		metrics:  metrics,
		clock:    clk,
	}
}

func (uc *participationUseCaseImpl) Participate(ctx context.Context, eventID, userID, userName string) error {
	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	if eventID == "" {
		return uc.fail(ctx, ActionParticipate, eventID, userID, errs.Mark(event.ErrEmptyEventID, errs.ErrValidation))
	}

	name := strings.TrimSpace(userName)
	if name == "" {
		name = uc.lookupName(ctx, userID)
	}

	participant, err := event.NewParticipant(userID, name, uc.clock.Now())
	if err != nil {
		return uc.fail(ctx, ActionParticipate, eventID, userID, errs.Mark(err, errs.ErrValidation))
	}

	var added bool
	err = uc.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		added, err = tx.Events().AddParticipant(ctx, eventID, participant)
		return err
	})
	if err != nil {
		return uc.fail(ctx, ActionParticipate, eventID, userID, errs.Wrapf(err, "participate in event %s", eventID))
	}

	if !added {
		uc.metrics.ObserveParticipation(ActionParticipate, "unchanged")
		slog.DebugContext(ctx, "participant already registered", "event_id", eventID, "user_id", participant.UserID())
		return nil
	}

	uc.metrics.ObserveParticipation(ActionParticipate, "ok")
	uc.notify(ctx, Notification{
		Kind: NotificationParticipantJoined,
		Key:  eventID,
		Payload: map[string]any{
			"event_id": eventID,
			"user_id":  participant.UserID(),
			"name":     participant.Name(),
		},
		OccurredAt: participant.JoinedAt(),
	})
	return nil
}

func (uc *participationUseCaseImpl) CancelParticipation(ctx context.Context, eventID, userID, userName string) error {
	eventID = strings.TrimSpace(eventID)
	userID = strings.TrimSpace(userID)
	if eventID == "" {
		return uc.fail(ctx, ActionCancel, eventID, userID, errs.Mark(event.ErrEmptyEventID, errs.ErrValidation))
	}
	if userID == "" {
		return uc.fail(ctx, ActionCancel, eventID, userID, errs.Mark(event.ErrEmptyUserID, errs.ErrValidation))
	}

	var removed bool
	err := uc.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		removed, err = tx.Events().RemoveParticipant(ctx, eventID, userID)
		return err
	})
	if err != nil {
		return uc.fail(ctx, ActionCancel, eventID, userID, errs.Wrapf(err, "cancel participation in event %s", eventID))
	}

	if !removed {
		uc.metrics.ObserveParticipation(ActionCancel, "unchanged")
		slog.DebugContext(ctx, "participant was not registered", "event_id", eventID, "user_id", userID, "name", userName)
		return nil
	}

	uc.metrics.ObserveParticipation(ActionCancel, "ok")
	uc.notify(ctx, Notification{
		Kind: NotificationParticipantLeft,
		Key:  eventID,
		Payload: map[string]any{
			"event_id": eventID,
			"user_id":  userID,
		},
		OccurredAt: uc.clock.Now(),
	})
	return nil
}

// lookupName returns "" when the directory has no profile or cannot be reached.
func (uc *participationUseCaseImpl) lookupName(ctx context.Context, userID string) string {
	if uc.profiles == nil || userID == "" {
		return ""
	}
	profile, err := uc.profiles.Lookup(ctx, userID)
	if err != nil {
		if !errs.Is(err, errs.ErrNotFound) {
			slog.WarnContext(ctx, "participant directory lookup failed", "user_id", userID, "error", err.Error())
		}
		return ""
	}
	return profile.Name()
}

func (uc *participationUseCaseImpl) fail(ctx context.Context, action, eventID, userID string, err error) error {
	kind := errs.KindName(err)
	uc.metrics.ObserveParticipation(action, kind)
	slog.ErrorContext(ctx, "participation change failed",
		"action", action,
		"event_id", eventID,
		"user_id", userID,
		"kind", kind,
		"error", err.Error())
	return err
}

func (uc *participationUseCaseImpl) notify(ctx context.Context, n Notification) {
	if err := uc.notifier.Notify(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to publish notification", "kind", n.Kind, "key", n.Key, "error", err.Error())
	}
}
