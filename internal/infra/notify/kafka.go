package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/commands"

	"github.com/segmentio/kafka-go"
)

const headerKind = "kind"

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type envelope struct {
	Kind       string         `json:"kind"`
	Key        string         `json:"key"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// KafkaNotifier publishes notifications keyed by Notification.Key so that
// messages about one product or event stay on one partition.
type KafkaNotifier struct {
	writer MessageWriter
	topic  string
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaNotifier(writer MessageWriter, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, topic: topic}
}

func (n *KafkaNotifier) Notify(ctx context.Context, note commands.Notification) error {
	data, err := json.Marshal(envelope{
		Kind:       note.Kind,
		Key:        note.Key,
		Payload:    note.Payload,
		OccurredAt: note.OccurredAt,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification")
	}

	msg := kafka.Message{
		Key:     []byte(note.Key),
		Value:   data,
		Headers: []kafka.Header{{Key: headerKind, Value: []byte(note.Kind)}},
		Time:    note.OccurredAt,
	}
	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		return errs.Wrapf(err, "failed to publish %s to %s", note.Kind, n.topic)
	}
	slog.DebugContext(ctx, "notification published", "kind", note.Kind, "key", note.Key, "topic", n.topic)
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
