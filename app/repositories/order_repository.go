package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/database"
)

const ordersCollection = "orders"

// OrderRepository handles persistence for Order documents.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

func (r *OrderRepository) col() *mongo.Collection {
	return database.Collection(ordersCollection)
}

// Create inserts a new order and returns it with the assigned id.
func (r *OrderRepository) Create(ctx context.Context, order models.Order) (models.Order, error) {
	now := time.Now().UTC()
	order.ID = primitive.NewObjectID()
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, order); err != nil {
		return models.Order{}, apperr.Persistence("orders.create", err)
	}
	return order, nil
}

// FindByID looks up one order by id.
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	var order models.Order
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Order{}, apperr.Persistence("orders.find", err)
	}
	return order, nil
}

// Find returns orders matching the filter, newest first.
func (r *OrderRepository) Find(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col().Find(ctx, query, opts)
	if err != nil {
		return nil, apperr.Persistence("orders.list", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, apperr.Persistence("orders.list", err)
	}
	return orders, nil
}

// CompareAndSwapStatus atomically moves an order from one status to another.
// The filter matches on both _id and the expected current status, so two
// concurrent conflicting transitions can never both win: the loser's filter
// no longer matches and apperr.ErrNotFound is returned. The caller decides
// whether that means "order missing" or "status already moved" by re-reading.
func (r *OrderRepository) CompareAndSwapStatus(ctx context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&order)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Order{}, apperr.Persistence("orders.transition", err)
	}
	return order, nil
}
