package models

import (
	"encoding/json"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MealPlanItem is one (menu item, quantity) pair inside a combo.
type MealPlanItem struct {
	MenuItemID primitive.ObjectID `bson:"menuItemId" json:"menuItemId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

// MealPlan is a named bundle of menu items sold at a combo price.
// OriginalPrice is the sum of the individual prices, kept so the UI can
// show the savings.
type MealPlan struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice" json:"originalPrice"`
	Items         []MealPlanItem     `bson:"items" json:"items"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category" json:"category"`
	IsAvailable   bool               `bson:"isAvailable" json:"isAvailable"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SavingsPercent is derived, never stored.
func (m *MealPlan) SavingsPercent() int {
	if m.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((m.OriginalPrice - m.Price) / m.OriginalPrice * 100))
}

// MarshalJSON includes the derived savingsPercent field.
func (m MealPlan) MarshalJSON() ([]byte, error) {
	type alias MealPlan
	return json.Marshal(struct {
		alias
		SavingsPercent int `json:"savingsPercent"`
	}{alias(m), m.SavingsPercent()})
}
