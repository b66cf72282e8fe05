package notify

import (
	"context"
	"log/slog"

	"commerce-booking/internal/usecase/commands"
)

// LogNotifier is used when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, note commands.Notification) error {
	n.logger.InfoContext(ctx, "notification",
		"kind", note.Kind,
		"key", note.Key,
		"occurred_at", note.OccurredAt,
		"payload", note.Payload,
	)
	return nil
}
