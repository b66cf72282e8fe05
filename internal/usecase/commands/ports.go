package commands

import (
	"context"
	"time"

	"commerce-booking/internal/domain/directory"
)

// Notification kinds published after a successful write
const (
	NotificationOrderScheduled    = "production_order.scheduled"
	NotificationParticipantJoined = "event.participant_joined"
	NotificationParticipantLeft   = "event.participant_left"
)

type Notification struct {
	Kind       string
	Key        string
	Payload    map[string]any
	OccurredAt time.Time
}

// Notifier delivery is best effort; callers log failures and carry on.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Status      string
	ResultID    string
}

type IdempotencyStore interface {
	// Begin claims key for a request. When the key is already known the stored
	// record is returned and claimed is false.
	Begin(ctx context.Context, key, requestHash string) (rec *IdempotencyRecord, claimed bool, err error)
	Complete(ctx context.Context, key, resultID string) error
	// Release forgets a claimed key after a failed request so the client can retry it.
	Release(ctx context.Context, key string) error
}

// ProfileLookup resolves display names for participants who did not send one.
type ProfileLookup interface {
	Lookup(ctx context.Context, id string) (*directory.Profile, error)
}

// Metrics records command outcomes. Outcome is an errs.KindName or "ok".
type Metrics interface {
	ObserveProductionOrder(outcome string)
	ObserveParticipation(action, outcome string)
}

type NopMetrics struct{}

func (NopMetrics) ObserveProductionOrder(string)       {}
func (NopMetrics) ObserveParticipation(string, string) {}
