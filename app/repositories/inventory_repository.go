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

const inventoryCollection = "inventory"

// InventoryRepository handles persistence for InventoryItem documents.
type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

func (r *InventoryRepository) col() *mongo.Collection {
	return database.Collection(inventoryCollection)
}

// Create inserts a new inventory item.
func (r *InventoryRepository) Create(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	now := time.Now().UTC()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, item); err != nil {
		return models.InventoryItem{}, apperr.Persistence("inventory.create", err)
	}
	return item, nil
}

// FindAll returns every inventory item sorted by category then name.
func (r *InventoryRepository) FindAll(ctx context.Context) ([]models.InventoryItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.col().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Persistence("inventory.list", err)
	}
	defer cursor.Close(ctx)

	items := []models.InventoryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Persistence("inventory.list", err)
	}
	return items, nil
}

// FindByIDs returns the inventory items whose ids appear in ids.
func (r *InventoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.InventoryItem, error) {
	cursor, err := r.col().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Persistence("inventory.find", err)
	}
	defer cursor.Close(ctx)

	items := []models.InventoryItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Persistence("inventory.find", err)
	}
	return items, nil
}

// Update sets the given fields on an inventory item and returns the new
// document. The quantity field is settable here for corrections; use Adjust
// for relative restock/consumption changes.
func (r *InventoryRepository) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.InventoryItem, error) {
	fields["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.InventoryItem
	err := r.col().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InventoryItem{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.InventoryItem{}, apperr.Persistence("inventory.update", err)
	}
	return item, nil
}

// Adjust increments (or decrements, for negative values) the on-hand
// quantity atomically and returns the updated document.
func (r *InventoryRepository) Adjust(ctx context.Context, id primitive.ObjectID, delta float64) (models.InventoryItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.InventoryItem
	err := r.col().FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"quantity": delta},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
		opts,
	).Decode(&item)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.InventoryItem{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.InventoryItem{}, apperr.Persistence("inventory.adjust", err)
	}
	return item, nil
}
