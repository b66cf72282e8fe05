package repository

import (
	"context"
	"log/slog"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/infra"
)

var profileQueries = map[directory.Kind]string{
	directory.KindSpecialist: `SELECT display_name, email FROM specialists WHERE id = $1`,
	directory.KindUser:       `SELECT display_name, email FROM users WHERE id = $1`,
}

type ProfileRepository struct {
	db     DBTX
	kind   directory.Kind
	logger *slog.Logger
}

func NewProfileRepository(db DBTX, kind directory.Kind, logger *slog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, kind: kind, logger: logger}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*directory.Profile, error) {
	query, ok := profileQueries[r.kind]
	if !ok {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, string(r.kind), directory.ErrUnknownKind)
	}

	var displayName, email *string
	if err := r.db.QueryRow(ctx, query, id).Scan(&displayName, &email); err != nil {
		return nil, classify(r.logger, "failed to find "+string(r.kind)+" profile "+id, err)
	}

	p := &directory.Profile{ID: id, Kind: r.kind}
	if displayName != nil {
		p.DisplayName = *displayName
	}
	if email != nil {
		p.Email = *email
	}
	return p, nil
}
