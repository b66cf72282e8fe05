package mongorepo

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"commerce-booking/internal/domain/directory"
	"commerce-booking/internal/domain/event"
	"commerce-booking/internal/domain/inventory"
	"commerce-booking/internal/domain/production"
	"commerce-booking/internal/infra"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	CollectionInventory        = "inventory"
	CollectionProductionOrders = "production_orders"
	CollectionEvents           = "events"
	CollectionSpecialists      = "specialists"
	CollectionUsers            = "users"
)

// Repositories use whatever session travels in ctx, so the same code runs
// inside and outside a transaction.

type inventoryDoc struct {
	ProductID string    `bson:"_id"`
	Stock     int       `bson:"stock"`
	Version   int64     `bson:"version"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type InventoryRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewInventoryRepository(db *mongo.Database, logger *slog.Logger) *InventoryRepository {
	return &InventoryRepository{collection: db.Collection(CollectionInventory), logger: logger}
}

func (r *InventoryRepository) Get(ctx context.Context, productID string) (*inventory.Record, error) {
	var doc inventoryDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&doc); err != nil {
		return nil, Classify(r.logger, "failed to get inventory "+productID, err)
	}
	return inventory.Reconstruct(doc.ProductID, doc.Stock, doc.Version, doc.UpdatedAt.UTC()), nil
}

func (r *InventoryRepository) Update(ctx context.Context, rec *inventory.Record) error {
	filter := bson.M{"_id": rec.ProductID(), "version": rec.Version()}
	update := bson.M{
		"$set": bson.M{"stock": rec.Stock(), "updated_at": rec.UpdatedAt()},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return Classify(r.logger, "failed to update inventory "+rec.ProductID(), err)
	}
	if res.MatchedCount == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "inventory changed since read: "+rec.ProductID(), nil)
	}
	return nil
}

type orderDoc struct {
	ID            string    `bson:"_id"`
	ProductID     string    `bson:"product_id"`
	Quantity      int       `bson:"quantity"`
	ScheduledDate time.Time `bson:"scheduled_date"`
	CreatedBy     string    `bson:"created_by"`
	CreatedAt     time.Time `bson:"created_at"`
	Status        string    `bson:"status"`
}

type ProductionOrderRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewProductionOrderRepository(db *mongo.Database, logger *slog.Logger) *ProductionOrderRepository {
	return &ProductionOrderRepository{collection: db.Collection(CollectionProductionOrders), logger: logger}
}

func (r *ProductionOrderRepository) Create(ctx context.Context, order *production.Order) (string, error) {
	doc := orderDoc{
		ID:            order.ID(),
		ProductID:     order.ProductID(),
		Quantity:      order.Quantity(),
		ScheduledDate: order.ScheduledDate(),
		CreatedBy:     order.CreatedBy(),
		CreatedAt:     order.CreatedAt(),
		Status:        order.Status().String(),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", Classify(r.logger, "failed to create production order", err)
	}
	return doc.ID, nil
}

func (r *ProductionOrderRepository) Get(ctx context.Context, id string) (*production.Order, error) {
	var doc orderDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, Classify(r.logger, "failed to get production order "+id, err)
	}
	return production.Reconstruct(doc.ID, doc.ProductID, doc.Quantity, doc.ScheduledDate.UTC(), doc.CreatedBy, doc.CreatedAt.UTC(), production.Status(doc.Status)), nil
}

type participantDoc struct {
	Name     string    `bson:"name"`
	JoinedAt time.Time `bson:"joined_at"`
}

type eventDoc struct {
	ID           string                    `bson:"_id"`
	Title        string                    `bson:"title"`
	Participants map[string]participantDoc `bson:"participants,omitempty"`
}

type EventRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewEventRepository(db *mongo.Database, logger *slog.Logger) *EventRepository {
	return &EventRepository{collection: db.Collection(CollectionEvents), logger: logger}
}

func (r *EventRepository) Get(ctx context.Context, eventID string) (*event.Event, error) {
	var doc eventDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": eventID}).Decode(&doc); err != nil {
		return nil, Classify(r.logger, "failed to get event "+eventID, err)
	}
	participants := make([]event.Participant, 0, len(doc.Participants))
	for userID, p := range doc.Participants {
		participants = append(participants, event.ReconstructParticipant(userID, p.Name, p.JoinedAt.UTC()))
	}
	return event.Reconstruct(doc.ID, doc.Title, participants), nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID string, p event.Participant) (bool, error) {
	field, err := r.participantField(p.UserID())
	if err != nil {
		return false, err
	}
	filter := bson.M{"_id": eventID, field: bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{field: participantDoc{Name: p.Name(), JoinedAt: p.JoinedAt()}}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, Classify(r.logger, "failed to add participant to event "+eventID, err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, eventID)
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	field, err := r.participantField(userID)
	if err != nil {
		return false, err
	}
	filter := bson.M{"_id": eventID, field: bson.M{"$exists": true}}
	update := bson.M{"$unset": bson.M{field: ""}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, Classify(r.logger, "failed to remove participant from event "+eventID, err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	return false, r.ensureExists(ctx, eventID)
}

func (r *EventRepository) HasParticipant(ctx context.Context, eventID, userID string) (bool, error) {
	field, err := r.participantField(userID)
	if err != nil {
		return false, nil
	}
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": eventID, field: bson.M{"$exists": true}}, options.Count().SetLimit(1))
	if err != nil {
		return false, Classify(r.logger, "failed to check participant in event "+eventID, err)
	}
	return n > 0, nil
}

func (r *EventRepository) ensureExists(ctx context.Context, eventID string) error {
	n, err := r.collection.CountDocuments(ctx, bson.M{"_id": eventID}, options.Count().SetLimit(1))
	if err != nil {
		return Classify(r.logger, "failed to check event "+eventID, err)
	}
	if n == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "event not found: "+eventID, nil)
	}
	return nil
}

// User ids become field names, so path separators and operators are refused.
func (r *EventRepository) participantField(userID string) (string, error) {
	if userID == "" || strings.ContainsAny(userID, ".\x00") || strings.HasPrefix(userID, "$") {
		return "", infra.WrapRepoErr(r.logger, infra.KindDecode, "user id not usable as a participant key: "+userID, nil)
	}
	return "participants." + userID, nil
}

type profileDoc struct {
	ID          string `bson:"_id"`
	DisplayName string `bson:"display_name"`
	Email       string `bson:"email"`
}

var profileCollections = map[directory.Kind]string{
	directory.KindSpecialist: CollectionSpecialists,
	directory.KindUser:       CollectionUsers,
}

type ProfileRepository struct {
	db     *mongo.Database
	kind   directory.Kind
	logger *slog.Logger
}

func NewProfileRepository(db *mongo.Database, kind directory.Kind, logger *slog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, kind: kind, logger: logger}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*directory.Profile, error) {
	name, ok := profileCollections[r.kind]
	if !ok {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, string(r.kind), directory.ErrUnknownKind)
	}
	var doc profileDoc
	if err := r.db.Collection(name).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, Classify(r.logger, "failed to find "+string(r.kind)+" profile "+id, err)
	}
	return &directory.Profile{ID: doc.ID, DisplayName: doc.DisplayName, Email: doc.Email, Kind: r.kind}, nil
}
