package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/database"
)

const mealPlansCollection = "meal_plans"

// MealPlanRepository handles persistence for MealPlan documents.
type MealPlanRepository struct{}

func NewMealPlanRepository() *MealPlanRepository {
	return &MealPlanRepository{}
}

func (r *MealPlanRepository) col() *mongo.Collection {
	return database.Collection(mealPlansCollection)
}

// Create inserts a new meal combo.
func (r *MealPlanRepository) Create(ctx context.Context, plan models.MealPlan) (models.MealPlan, error) {
	now := time.Now().UTC()
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if _, err := r.col().InsertOne(ctx, plan); err != nil {
		return models.MealPlan{}, apperr.Persistence("meal_plans.create", err)
	}
	return plan, nil
}

// FindAvailable returns selling combos sorted by category then price.
func (r *MealPlanRepository) FindAvailable(ctx context.Context) ([]models.MealPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}})
	cursor, err := r.col().Find(ctx, bson.M{"isAvailable": true}, opts)
	if err != nil {
		return nil, apperr.Persistence("meal_plans.list", err)
	}
	defer cursor.Close(ctx)

	plans := []models.MealPlan{}
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, apperr.Persistence("meal_plans.list", err)
	}
	return plans, nil
}
