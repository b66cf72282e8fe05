package repository

import (
	"context"
	"log/slog"

	"commerce-booking/internal/domain/production"
	"commerce-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	createProductionOrderSQL = `INSERT INTO production_orders
(id, product_id, quantity, scheduled_date, created_by, created_at, status)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	getProductionOrderSQL = `SELECT product_id, quantity, scheduled_date, created_by, created_at, status
FROM production_orders WHERE id = $1`
)

type ProductionOrderRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewProductionOrderRepository(db DBTX, logger *slog.Logger) *ProductionOrderRepository {
	return &ProductionOrderRepository{db: db, logger: logger}
}

func (r *ProductionOrderRepository) Create(ctx context.Context, order *production.Order) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, createProductionOrderSQL,
		order.ID(),
		order.ProductID(),
		int32(order.Quantity()), // #nosec G115 -- quantity column is INTEGER
		pgconv.DateToPgtype(order.ScheduledDate()),
		order.CreatedBy(),
		pgconv.TimeToPgtype(order.CreatedAt()),
		order.Status().String(),
	).Scan(&id)
	if err != nil {
		return "", classify(r.logger, "failed to create production order", err)
	}
	return id, nil
}

func (r *ProductionOrderRepository) Get(ctx context.Context, id string) (*production.Order, error) {
	var (
		productID     string
		quantity      int32
		scheduledDate pgtype.Date
		createdBy     string
		createdAt     pgtype.Timestamptz
		status        string
	)
	err := r.db.QueryRow(ctx, getProductionOrderSQL, id).
		Scan(&productID, &quantity, &scheduledDate, &createdBy, &createdAt, &status)
	if err != nil {
		return nil, classify(r.logger, "failed to get production order "+id, err)
	}
	return production.Reconstruct(
		id,
		productID,
		int(quantity),
		pgconv.DateFromPgtype(scheduledDate),
		createdBy,
		pgconv.TimeFromPgtype(createdAt),
		production.Status(status),
	), nil
}
