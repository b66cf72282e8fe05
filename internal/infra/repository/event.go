package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"commerce-booking/internal/domain/event"
	"commerce-booking/internal/infra"
	"commerce-booking/internal/pkg/pgconv"
)

// Participants are stored as a JSONB object keyed by user id, so add and
// remove are single-statement updates that never touch other entries.
const (
	getEventSQL = `SELECT title, participants FROM events WHERE id = $1`

	addParticipantSQL = `UPDATE events
SET participants = COALESCE(participants, '{}'::jsonb) || jsonb_build_object($2::text, $3::jsonb)
WHERE id = $1 AND NOT (COALESCE(participants, '{}'::jsonb) ? $2::text)`

	removeParticipantSQL = `UPDATE events
SET participants = participants - $2::text
WHERE id = $1 AND participants ? $2::text`

	hasParticipantSQL = `SELECT COALESCE(participants ? $2::text, false) FROM events WHERE id = $1`

	eventExistsSQL = `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`
)

type participantJSON struct {
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

type EventRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewEventRepository(db DBTX, logger *slog.Logger) *EventRepository {
	return &EventRepository{db: db, logger: logger}
}

func (r *EventRepository) Get(ctx context.Context, eventID string) (*event.Event, error) {
	var (
		title string
		raw   []byte
	)
	if err := r.db.QueryRow(ctx, getEventSQL, eventID).Scan(&title, &raw); err != nil {
		return nil, classify(r.logger, "failed to get event "+eventID, err)
	}

	var docs map[string]participantJSON
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDecode, "failed to decode participants of event "+eventID, err)
		}
	}

	participants := make([]event.Participant, 0, len(docs))
	for userID, doc := range docs {
		participants = append(participants, event.ReconstructParticipant(userID, doc.Name, doc.JoinedAt.UTC()))
	}
	return event.Reconstruct(eventID, title, participants), nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID string, p event.Participant) (bool, error) {
	doc, err := json.Marshal(participantJSON{Name: p.Name(), JoinedAt: p.JoinedAt().UTC()})
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDecode, "failed to encode participant", err)
	}

	tag, err := r.db.Exec(ctx, addParticipantSQL, eventID, p.UserID(), string(doc))
	if err != nil {
		return false, classify(r.logger, "failed to add participant to event "+eventID, err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, eventID)
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	tag, err := r.db.Exec(ctx, removeParticipantSQL, eventID, userID)
	if err != nil {
		return false, classify(r.logger, "failed to remove participant from event "+eventID, err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, eventID)
}

func (r *EventRepository) HasParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	var found bool
	err := r.db.QueryRow(ctx, hasParticipantSQL, eventID, userID).Scan(&found)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, classify(r.logger, "failed to check participant in event "+eventID, err)
	}
	return found, nil
}

// ensureExists tells "nothing to change" apart from "no such event".
func (r *EventRepository) ensureExists(ctx context.Context, eventID string) error {
	var exists bool
	if err := r.db.QueryRow(ctx, eventExistsSQL, eventID).Scan(&exists); err != nil {
		return classify(r.logger, "failed to check event "+eventID, err)
	}
	if !exists {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "event not found: "+eventID, nil)
	}
	return nil
}
