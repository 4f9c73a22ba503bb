package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IngredientUsage links a menu item to one inventory item and the amount
// consumed per serving.
type IngredientUsage struct {
	InventoryID  primitive.ObjectID `bson:"inventoryId" json:"inventoryId"`
	QuantityUsed float64            `bson:"quantityUsed" json:"quantityUsed"`
}

// MenuItem is a catalog entry. Orders snapshot its name and price at
// creation time and the core never mutates it.
type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description" json:"description"`
	Ingredients []IngredientUsage  `bson:"ingredients" json:"ingredients"`
	IsAvailable bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
