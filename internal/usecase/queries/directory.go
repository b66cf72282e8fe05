package queries

//go:generate mockgen -source=directory.go -destination=../../../tests/mock/queries/directory.go -package=queriesmock

import (
	"context"
	"log/slog"
	"strings"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"
)

// DirectoryQueries looks a person up across the profile collections in priority
// order. The first source that knows the id wins.
type DirectoryQueries interface {
	Lookup(ctx context.Context, id string) (*directory.Profile, error)
}

type directoryQueriesImpl struct {
	uow   shared.UnitOfWork
	order []directory.Kind
}

func NewDirectoryQueries(uow shared.UnitOfWork) DirectoryQueries {
	return NewDirectoryQueriesWithOrder(uow, directory.DefaultOrder())
}

func NewDirectoryQueriesWithOrder(uow shared.UnitOfWork, order []directory.Kind) DirectoryQueries {
	return &directoryQueriesImpl{uow: uow, order: order}
}

func (q *directoryQueriesImpl) Lookup(ctx context.Context, id string) (*directory.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errs.Mark(errs.New("profile id cannot be empty"), errs.ErrValidation)
	}

	var found *directory.Profile
	err := q.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		for i, kind := range q.order {
			profile, err := tx.Profiles(kind).FindByID(ctx, id)
			if err == nil {
				p := *profile
				p.Kind = kind
				p.Priority = directory.FallbackRecord
				if i == 0 {
					p.Priority = directory.PrimaryRecord
				}
				found = &p
				return nil
			}
			if !errs.Is(err, errs.ErrNotFound) {
				return errs.Wrapf(err, "lookup %s profile", kind)
			}
			slog.DebugContext(ctx, "profile source missed", "kind", kind, "id", id)
		}
		return errs.Mark(errs.Newf("no profile for %s", id), errs.ErrNotFound)
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}
