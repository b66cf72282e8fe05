//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/domain/event"
	"commerce-booking/internal/infra/memstore"
	"commerce-booking/internal/infra/uow"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/queries"
	"commerce-booking/internal/usecase/shared"
	"commerce-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUnit(store *memstore.Store) shared.UnitOfWork {
	return uow.NewMemoryUoW(store, shared.NewRetryPolicy(1, time.Millisecond))
}

func TestDirectoryLookup(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	store.PutProfile(directory.KindSpecialist, directory.Profile{ID: "s1", DisplayName: "Dr. Ionescu"})
	store.PutProfile(directory.KindUser, directory.Profile{ID: "s1", DisplayName: "Ionescu (cont client)"})
	store.PutProfile(directory.KindUser, directory.Profile{ID: "u1", Email: "ana@example.ro"})

	t.Run("primary source wins", func(t *testing.T) {
		p, err := queries.NewDirectoryQueries(newUnit(store)).Lookup(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Dr. Ionescu", p.Name())
		assert.Equal(t, directory.KindSpecialist, p.Kind)
		assert.Equal(t, directory.PrimaryRecord, p.Priority)
	})

	t.Run("falls back to the next source", func(t *testing.T) {
		p, err := queries.NewDirectoryQueries(newUnit(store)).Lookup(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "ana@example.ro", p.Name())
		assert.Equal(t, directory.KindUser, p.Kind)
		assert.Equal(t, directory.FallbackRecord, p.Priority)
	})

	t.Run("custom order", func(t *testing.T) {
		order := []directory.Kind{directory.KindUser, directory.KindSpecialist}
		p, err := queries.NewDirectoryQueriesWithOrder(newUnit(store), order).Lookup(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Ionescu (cont client)", p.Name())
		assert.Equal(t, directory.PrimaryRecord, p.Priority)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := queries.NewDirectoryQueries(newUnit(store)).Lookup(ctx, "nobody")
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := queries.NewDirectoryQueries(newUnit(store)).Lookup(ctx, "  ")
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("store failure is not a miss", func(t *testing.T) {
		broken := memstore.New()
		broken.SetFailure(errs.New("timeout"))
		_, err := queries.NewDirectoryQueries(newUnit(broken)).Lookup(ctx, "s1")
		assert.True(t, errs.Is(err, errs.ErrStoreUnavailable))
		assert.False(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestParticipationQueries(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	store.PutEvent("e1", "Atelier")
	unit := newUnit(store)
	q := queries.NewParticipationQueries(unit)

	t.Run("event without participants", func(t *testing.T) {
		ok, err := q.IsParticipating(ctx, "e1", "u1")
		require.NoError(t, err)
		assert.False(t, ok)

		view, err := q.ListParticipants(ctx, "e1")
		require.NoError(t, err)
		assert.Equal(t, "Atelier", view.Title)
		assert.Empty(t, view.Participants)
	})

	t.Run("missing event reads as not participating", func(t *testing.T) {
		ok, err := q.IsParticipating(ctx, "missing", "u1")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = q.ListParticipants(ctx, "missing")
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("participants are ordered by join time", func(t *testing.T) {
		base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		err := unit.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
			for i, id := range []string{"u3", "u1", "u2"} {
				p, err := event.NewParticipant(id, "", base.Add(time.Duration(i)*time.Minute))
				if err != nil {
					return err
				}
				if _, err := tx.Events().AddParticipant(ctx, "e1", p); err != nil {
					return err
				}
			}
			return nil
		})
		require.NoError(t, err)

		view, err := q.ListParticipants(ctx, "e1")
		require.NoError(t, err)
		require.Len(t, view.Participants, 3)
		assert.Equal(t, "u3", view.Participants[0].UserID)
		assert.Equal(t, "u1", view.Participants[1].UserID)
		assert.Equal(t, "u2", view.Participants[2].UserID)

		ok, err := q.IsParticipating(ctx, "e1", "u1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = q.IsParticipating(ctx, " e1 ", " u1")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInventoryAndProductionQueries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store := memstore.New()
	store.PutInventory("p1", 10, now)
	unit := newUnit(store)

	t.Run("inventory", func(t *testing.T) {
		view, err := queries.NewInventoryQueries(unit).Get(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "p1", view.ProductID)
		assert.Equal(t, 10, view.Stock)
		assert.True(t, view.UpdatedAt.Equal(now))

		_, err = queries.NewInventoryQueries(unit).Get(ctx, "p2")
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("production order", func(t *testing.T) {
		order, err := builder.NewProductionOrderBuilder().BuildDomain()
		require.NoError(t, err)
		err = unit.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			_, err := tx.ProductionOrders().Create(ctx, order)
			return err
		})
		require.NoError(t, err)

		view, err := queries.NewProductionQueries(unit).GetByID(ctx, order.ID())
		require.NoError(t, err)
		assert.Equal(t, order.ID(), view.ID)
		assert.Equal(t, 7, view.Quantity)
		assert.Equal(t, "scheduled", view.Status)
		assert.Equal(t, "operator-1", view.CreatedBy)

		_, err = queries.NewProductionQueries(unit).GetByID(ctx, "unknown")
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}
