package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/database"
)

const menuCollection = "menu_items"

// MenuRepository handles persistence for MenuItem documents.
// The order core only ever reads from it.
type MenuRepository struct{}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{}
}

func (r *MenuRepository) col() *mongo.Collection {
	return database.Collection(menuCollection)
}

// Create inserts a new catalog entry.
func (r *MenuRepository) Create(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	now := time.Now().UTC()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, item); err != nil {
		return models.MenuItem{}, apperr.Persistence("menu.create", err)
	}
	return item, nil
}

// FindByID looks up one menu item.
func (r *MenuRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.MenuItem, error) {
	var item models.MenuItem
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MenuItem{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.MenuItem{}, apperr.Persistence("menu.find", err)
	}
	return item, nil
}

// FindByIDs returns the menu items whose ids appear in ids.
// Items that do not exist are simply absent from the result.
func (r *MenuRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error) {
	cursor, err := r.col().Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Persistence("menu.find", err)
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Persistence("menu.find", err)
	}
	return items, nil
}

// FindAvailable returns every catalog entry customers can currently order.
func (r *MenuRepository) FindAvailable(ctx context.Context) ([]models.MenuItem, error) {
	cursor, err := r.col().Find(ctx, bson.M{"isAvailable": true})
	if err != nil {
		return nil, apperr.Persistence("menu.list", err)
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, apperr.Persistence("menu.list", err)
	}
	return items, nil
}
