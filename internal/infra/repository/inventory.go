package repository

import (
	"context"
	"log/slog"

	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/infra"
	"commerce-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	getInventorySQL = `SELECT stock, version, updated_at FROM inventory WHERE product_id = $1`

	// Compare-and-swap on version; zero rows means a concurrent writer won.
	updateInventorySQL = `UPDATE inventory
SET stock = $2, updated_at = $3, version = version + 1
WHERE product_id = $1 AND version = $4`
)

type InventoryRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewInventoryRepository(db DBTX, logger *slog.Logger) *InventoryRepository {
	return &InventoryRepository{db: db, logger: logger}
}

func (r *InventoryRepository) Get(ctx context.Context, productID string) (*inventory.Record, error) {
	var (
		stock     int32
		version   int64
		updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getInventorySQL, productID).Scan(&stock, &version, &updatedAt)
	if err != nil {
		return nil, classify(r.logger, "failed to get inventory "+productID, err)
	}
	return inventory.Reconstruct(productID, int(stock), version, pgconv.TimeFromPgtype(updatedAt)), nil
}

func (r *InventoryRepository) Update(ctx context.Context, rec *inventory.Record) error {
	tag, err := r.db.Exec(ctx, updateInventorySQL,
		rec.ProductID(),
		int32(rec.Stock()), // #nosec G115 -- stock column is INTEGER
		pgconv.TimeToPgtype(rec.UpdatedAt()),
		rec.Version(),
	)
	if err != nil {
		return classify(r.logger, "failed to update inventory "+rec.ProductID(), err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "inventory changed since read: "+rec.ProductID(), nil)
	}
	return nil
}
