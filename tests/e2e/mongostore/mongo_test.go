//go:build e2e

package mongostore_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/production"
	"commerce-booking/internal/infra/idempotency"
	"commerce-booking/internal/infra/mongodb"
	"commerce-booking/internal/infra/mongorepo"
	"commerce-booking/internal/infra/notify"
	"commerce-booking/internal/infra/uow"
	"commerce-booking/internal/pkg/clock"
	"commerce-booking/internal/pkg/config"
	"commerce-booking/internal/pkg/errs"
	"commerce-booking/internal/usecase/commands"
	"commerce-booking/internal/usecase/shared"
	"commerce-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

type MongoStoreTestSuite struct {
	suite.Suite
	container *tcmongo.MongoDBContainer
	client    *mongo.Client
	db        *mongo.Database
	cleanup   func()
	logger    *slog.Logger
	unit      shared.UnitOfWork
	clock     *clock.MockClock
	now       time.Time
}

func TestMongoStoreTestSuite(t *testing.T) {
	suite.Run(t, new(MongoStoreTestSuite))
}

func (s *MongoStoreTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcmongo.Run(ctx, "mongo:7", tcmongo.WithReplicaSet("rs0"))
	s.Require().NoError(err, "failed to start mongo container")
	s.container = container

	uri, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.client, s.db, s.cleanup, err = mongodb.Connect(ctx, config.MongoConfig{
		URI:      withDirectConnection(uri),
		Database: "commerce_" + strings.ReplaceAll(uuid.New().String(), "-", ""),
		Timeout:  30 * time.Second,
	})
	s.Require().NoError(err, "failed to connect to mongo")
}

func (s *MongoStoreTestSuite) TearDownSuite() {
	if s.cleanup != nil {
		s.cleanup()
	}
	if s.container != nil {
		if err := testcontainers.TerminateContainer(s.container); err != nil {
			slog.Warn("failed to terminate mongo container", "error", err.Error())
		}
	}
}

func (s *MongoStoreTestSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.db.Drop(ctx))

	s.now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.clock = clock.NewMockClock(s.now)
	s.unit = uow.NewMongoUoW(s.client, s.db, shared.NewRetryPolicy(10, 5*time.Millisecond), s.logger)

	_, err := s.db.Collection(mongorepo.CollectionInventory).InsertOne(ctx, bson.M{
		"_id": "p1", "stock": 10, "version": int64(0), "updated_at": s.now.Add(-time.Hour),
	})
	s.Require().NoError(err)
	_, err = s.db.Collection(mongorepo.CollectionEvents).InsertOne(ctx, bson.M{"_id": "e1", "title": "Atelier"})
	s.Require().NoError(err)
}

// The replica set advertises the container hostname, which is not resolvable from the host.
func withDirectConnection(uri string) string {
	if strings.Contains(uri, "directConnection=") {
		return uri
	}
	if strings.Contains(uri, "?") {
		return uri + "&directConnection=true"
	}
	return strings.TrimSuffix(uri, "/") + "/?directConnection=true"
}

func (s *MongoStoreTestSuite) stock() (int, int64) {
	var doc struct {
		Stock   int   `bson:"stock"`
		Version int64 `bson:"version"`
	}
	err := s.db.Collection(mongorepo.CollectionInventory).FindOne(context.Background(), bson.M{"_id": "p1"}).Decode(&doc)
	s.Require().NoError(err)
	return doc.Stock, doc.Version
}

func (s *MongoStoreTestSuite) orderCount() int64 {
	n, err := s.db.Collection(mongorepo.CollectionProductionOrders).CountDocuments(context.Background(), bson.M{})
	s.Require().NoError(err)
	return n
}

func (s *MongoStoreTestSuite) productionUseCase() commands.ProductionCommands {
	return commands.NewProductionUseCase(
		s.unit,
		idempotency.NewMemoryStore(time.Hour, s.clock),
		notify.NewLogNotifier(s.logger),
		commands.NopMetrics{},
		s.clock,
	)
}

func (s *MongoStoreTestSuite) participationUseCase() commands.ParticipationCommands {
	return commands.NewParticipationUseCase(s.unit, nil, notify.NewLogNotifier(s.logger), commands.NopMetrics{}, s.clock)
}

func (s *MongoStoreTestSuite) participantIDs() []string {
	var ids []string
	err := s.unit.Run(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		ev, err := tx.Events().Get(ctx, "e1")
		if err != nil {
			return err
		}
		for _, p := range ev.Participants() {
			ids = append(ids, p.UserID())
		}
		return nil
	})
	s.Require().NoError(err)
	return ids
}

func (s *MongoStoreTestSuite) quantity(n int) inventory.Quantity {
	q, err := inventory.NewQuantity(n)
	s.Require().NoError(err)
	return q
}

func (s *MongoStoreTestSuite) params(quantity int) commands.CreateProductionOrderParams {
	return builder.NewProductionOrderBuilder().WithProductID("p1").WithQuantity(quantity).BuildParams()
}

// ================================================================================
// Inventory and production orders
// ================================================================================

func (s *MongoStoreTestSuite) TestReserveThenInsufficientStockRollsBack() {
	ctx := context.Background()
	uc := s.productionUseCase()

	_, err := uc.CreateProductionOrder(ctx, s.params(7))
	s.Require().NoError(err)

	_, err = uc.CreateProductionOrder(ctx, s.params(5))
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrInsufficientStock))

	stock, version := s.stock()
	s.Equal(3, stock)
	s.Equal(int64(1), version)
	s.Equal(int64(1), s.orderCount())
}

func (s *MongoStoreTestSuite) TestFailedTransactionLeavesNoWrites() {
	ctx := context.Background()
	boom := errs.New("boom")

	err := s.unit.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rec, err := tx.Inventory().Get(ctx, "p1")
		if err != nil {
			return err
		}
		if err := rec.Reserve(s.quantity(4), s.now); err != nil {
			return err
		}
		if err := tx.Inventory().Update(ctx, rec); err != nil {
			return err
		}
		order, err := production.NewOrder("p1", s.quantity(4), s.now, "operator-1", s.now)
		if err != nil {
			return err
		}
		if _, err := tx.ProductionOrders().Create(ctx, order); err != nil {
			return err
		}
		return boom
	})
	s.True(errs.Is(err, boom))

	stock, version := s.stock()
	s.Equal(10, stock)
	s.Equal(int64(0), version)
	s.Zero(s.orderCount())
}

func (s *MongoStoreTestSuite) TestStaleVersionUpdateIsRetryable() {
	ctx := context.Background()
	repo := mongorepo.NewInventoryRepository(s.db, s.logger)

	first, err := repo.Get(ctx, "p1")
	s.Require().NoError(err)
	stale, err := repo.Get(ctx, "p1")
	s.Require().NoError(err)

	s.Require().NoError(first.Reserve(s.quantity(2), s.now))
	s.Require().NoError(repo.Update(ctx, first))

	s.Require().NoError(stale.Reserve(s.quantity(3), s.now))
	err = repo.Update(ctx, stale)
	s.Require().Error(err)
	s.True(errs.Is(err, shared.ErrRetryable))

	stock, version := s.stock()
	s.Equal(8, stock)
	s.Equal(int64(1), version)
}

func (s *MongoStoreTestSuite) TestConcurrentOrdersNeverOversell() {
	ctx := context.Background()
	uc := s.productionUseCase()

	var g errgroup.Group
	results := make([]error, 2)
	for i, qty := range []int{7, 5} {
		g.Go(func() error {
			_, results[i] = uc.CreateProductionOrder(ctx, s.params(qty))
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		s.True(errs.Is(err, errs.ErrInsufficientStock), "unexpected error: %v", err)
	}
	s.Equal(1, succeeded)
	s.Equal(int64(1), s.orderCount())

	stock, _ := s.stock()
	s.Contains([]int{3, 5}, stock)
}

// ================================================================================
// Participation
// ================================================================================

func (s *MongoStoreTestSuite) TestJoinTwiceKeepsOneEntry() {
	ctx := context.Background()
	uc := s.participationUseCase()

	s.Require().NoError(uc.Participate(ctx, "e1", "u1", "Ana"))
	s.clock.Add(time.Minute)
	s.Require().NoError(uc.Participate(ctx, "e1", "u1", "Ana Maria"))

	s.Equal([]string{"u1"}, s.participantIDs())

	var ev struct {
		Participants map[string]struct {
			Name string `bson:"name"`
		} `bson:"participants"`
	}
	s.Require().NoError(s.db.Collection(mongorepo.CollectionEvents).FindOne(ctx, bson.M{"_id": "e1"}).Decode(&ev))
	s.Equal("Ana", ev.Participants["u1"].Name)
}

func (s *MongoStoreTestSuite) TestCancelMatchesOnUserIDOnly() {
	ctx := context.Background()
	uc := s.participationUseCase()

	s.Require().NoError(uc.Participate(ctx, "e1", "u1", "Ana"))
	s.Require().NoError(uc.Participate(ctx, "e1", "u2", "Bogdan"))

	s.Require().NoError(uc.CancelParticipation(ctx, "e1", "u1", "a different name"))
	s.Equal([]string{"u2"}, s.participantIDs())

	// absent user
	s.Require().NoError(uc.CancelParticipation(ctx, "e1", "u1", "Ana"))
	s.Equal([]string{"u2"}, s.participantIDs())
}

func (s *MongoStoreTestSuite) TestConcurrentJoinsAreAllKept() {
	ctx := context.Background()
	uc := s.participationUseCase()

	var g errgroup.Group
	for _, id := range []string{"u1", "u2", "u3", "u4", "u5", "u1", "u2"} {
		g.Go(func() error {
			return uc.Participate(ctx, "e1", id, "")
		})
	}
	s.Require().NoError(g.Wait())
	s.ElementsMatch([]string{"u1", "u2", "u3", "u4", "u5"}, s.participantIDs())
}

func (s *MongoStoreTestSuite) TestUnknownEvent() {
	ctx := context.Background()
	repo := mongorepo.NewEventRepository(s.db, s.logger)

	err := s.participationUseCase().Participate(ctx, "missing", "u1", "Ana")
	s.True(errs.Is(err, errs.ErrNotFound))

	ok, err := repo.HasParticipant(ctx, "missing", "u1")
	s.Require().NoError(err)
	s.False(ok)

	_, err = repo.RemoveParticipant(ctx, "missing", "u1")
	s.True(errs.Is(err, errs.ErrNotFound))
}
