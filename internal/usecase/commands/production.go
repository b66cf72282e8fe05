package commands

//go:generate mockgen -source=production.go -destination=../../../tests/mock/commands/production.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/production"
	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/shared"
)

var (
	ErrIdempotencyKeyReused = errs.Mark(errs.New("idempotency key reused with a different request"), errs.ErrValidation)
	ErrIdempotencyCheck     = errs.New("idempotency check failed")
)

type CreateProductionOrderParams struct {
	ProductID      string
	Quantity       int
	ScheduledDate  time.Time
	CreatedBy      string
	IdempotencyKey string
}

type CreateProductionOrderResult struct {
	OrderID  string
	Replayed bool
}

type ProductionCommands interface {
	CreateProductionOrder(ctx context.Context, params CreateProductionOrderParams) (*CreateProductionOrderResult, error)
}

type productionUseCaseImpl struct {
	uow         shared.UnitOfWork
	idempotency IdempotencyStore
	notifier    Notifier
	metrics     Metrics
	clock       clock.Clock
}

func NewProductionUseCase(
	uow shared.UnitOfWork,
	idempotency IdempotencyStore,
	notifier Notifier,
	metrics Metrics,
	clk clock.Clock,
) ProductionCommands {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &productionUseCaseImpl{
		uow:         uow,
		idempotency: idempotency,
		notifier:    notifier,
		metrics:     metrics,
		clock:       clk,
	}
}

func (uc *productionUseCaseImpl) CreateProductionOrder(ctx context.Context, params CreateProductionOrderParams) (*CreateProductionOrderResult, error) {
	result, err := uc.createProductionOrder(ctx, params)
	if err != nil {
		kind := errs.KindName(err)
		uc.metrics.ObserveProductionOrder(kind)

		logArgs := []any{
			"product_id", params.ProductID,
			"quantity", params.Quantity,
			"created_by", params.CreatedBy,
			"kind", kind,
			"error", err.Error(),
		}
		switch errs.Kind(err) {
		case errs.ErrNotFound, errs.ErrInsufficientStock, errs.ErrValidation, errs.ErrIdempotencyInProgress:
			slog.WarnContext(ctx, "production order rejected", logArgs...)
		default:
			slog.ErrorContext(ctx, "production order failed", logArgs...)
		}
		return nil, err
	}

	if result.Replayed {
		uc.metrics.ObserveProductionOrder("replayed")
	} else {
		uc.metrics.ObserveProductionOrder("ok")
	}
	return result, nil
}

func (uc *productionUseCaseImpl) createProductionOrder(ctx context.Context, params CreateProductionOrderParams) (*CreateProductionOrderResult, error) {
	quantity, err := inventory.NewQuantity(params.Quantity)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	order, err := production.NewOrder(params.ProductID, quantity, params.ScheduledDate, params.CreatedBy, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	idemKey := ""
	if params.IdempotencyKey != "" {
		idemKey = order.CreatedBy() + ":" + strings.TrimSpace(params.IdempotencyKey)
		replay, err := uc.claimIdempotencyKey(ctx, idemKey, calculateRequestHash(params))
		if err != nil {
			return nil, err
		}
		if replay != nil {
			return replay, nil
		}
	}

	orderID, err := uc.reserveAndSchedule(ctx, order, quantity)
	if err != nil {
		keepKey := false
		if mayHaveCommitted(err) {
			var committed bool
			committed, keepKey = uc.recoverOrder(ctx, order.ID(), err)
			if committed {
				slog.WarnContext(ctx, "production order committed despite store error", "order_id", order.ID(), "error", err.Error())
				orderID, err = order.ID(), nil
			}
		}
		if err != nil {
			if idemKey != "" {
				uc.settleFailedKey(ctx, idemKey, keepKey)
			}
			return nil, err
		}
	}

	if idemKey != "" {
		if completeErr := uc.idempotency.Complete(ctx, idemKey, orderID); completeErr != nil {
			slog.WarnContext(ctx, "failed to record idempotency result", "key", idemKey, "order_id", orderID, "error", completeErr.Error())
		}
	}

	uc.notify(ctx, order)
	return &CreateProductionOrderResult{OrderID: orderID}, nil
}

// reserveAndSchedule decrements stock and creates the order as one transaction.
func (uc *productionUseCaseImpl) reserveAndSchedule(ctx context.Context, order *production.Order, quantity inventory.Quantity) (string, error) {
	var orderID string
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		record, err := tx.Inventory().Get(ctx, order.ProductID())
		if err != nil {
			return err
		}

		if err := record.Reserve(quantity, uc.clock.Now()); err != nil {
			return err
		}

		if err := tx.Inventory().Update(ctx, record); err != nil {
			return err
		}

		id, err := tx.ProductionOrders().Create(ctx, order)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		// Order ids are generated per request, so a duplicate means an earlier attempt committed.
		if errs.Is(err, shared.ErrDuplicateKey) {
			return order.ID(), nil
		}
		return "", errs.Wrapf(err, "create production order for product %s", order.ProductID())
	}
	return orderID, nil
}

func mayHaveCommitted(err error) bool {
	return errs.Is(err, shared.ErrCommitOutcomeUnknown) || errs.Is(err, errs.ErrStoreUnavailable)
}

// recoverOrder looks for the order after a store failure. keepKey is true while
// the outcome stays unknown, so a retry with the same key cannot order twice.
func (uc *productionUseCaseImpl) recoverOrder(ctx context.Context, orderID string, cause error) (committed, keepKey bool) {
	err := uc.uow.Run(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.ProductionOrders().Get(ctx, orderID)
		return err
	})
	switch {
	case err == nil:
		return true, false
	case errs.Is(err, errs.ErrNotFound):
		return false, errs.Is(cause, shared.ErrCommitOutcomeUnknown)
	default:
		slog.WarnContext(ctx, "could not confirm production order after store error", "order_id", orderID, "error", err.Error())
		return false, true
	}
}

func (uc *productionUseCaseImpl) settleFailedKey(ctx context.Context, key string, keep bool) {
	if keep {
		slog.WarnContext(ctx, "keeping idempotency key claimed until it expires", "key", key)
		return
	}
	if err := uc.idempotency.Release(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to release idempotency key", "key", key, "error", err.Error())
	}
}

func (uc *productionUseCaseImpl) claimIdempotencyKey(ctx context.Context, key, requestHash string) (*CreateProductionOrderResult, error) {
	existing, claimed, err := uc.idempotency.Begin(ctx, key, requestHash)
	if err != nil {
		return nil, errs.Mark(errs.Mark(err, ErrIdempotencyCheck), errs.ErrStoreUnavailable)
	}
	if claimed {
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case IdempotencyCompleted:
		if existing.ResultID == "" {
			return nil, errs.New("completed request missing result order ID")
		}
		return &CreateProductionOrderResult{OrderID: existing.ResultID, Replayed: true}, nil
	case IdempotencyProcessing:
		return nil, errs.Wrap(errs.ErrIdempotencyInProgress, "production order request")
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (uc *productionUseCaseImpl) notify(ctx context.Context, order *production.Order) {
	n := Notification{
		Kind: NotificationOrderScheduled,
		Key:  order.ProductID(),
		Payload: map[string]any{
			"order_id":       order.ID(),
			"product_id":     order.ProductID(),
			"quantity":       order.Quantity(),
			"scheduled_date": order.ScheduledDate().Format(time.DateOnly),
			"created_by":     order.CreatedBy(),
			"status":         order.Status().String(),
		},
		OccurredAt: order.CreatedAt(),
	}
	if err := uc.notifier.Notify(ctx, n); err != nil {
		slog.WarnContext(ctx, "failed to publish notification", "kind", n.Kind, "order_id", order.ID(), "error", err.Error())
	}
}

func calculateRequestHash(params CreateProductionOrderParams) string {
	data, _ := json.Marshal(struct {
		ProductID     string `json:"product_id"`
		Quantity      int    `json:"quantity"`
		ScheduledDate string `json:"scheduled_date"`
	}{
		ProductID:     strings.TrimSpace(params.ProductID),
		Quantity:      params.Quantity,
		ScheduledDate: params.ScheduledDate.UTC().Format(time.DateOnly),
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
