package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockStatus is derived from quantity and threshold, never stored.
type StockStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
	StockOut StockStatus = "out"
)

// InventoryItem is one stocked ingredient or supply. Quantity only changes
// through explicit counter adjustments; placing or preparing an order never
// decrements stock automatically.
type InventoryItem struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Quantity          float64            `bson:"quantity" json:"quantity"`
	Unit              string             `bson:"unit" json:"unit"`
	LowStockThreshold float64            `bson:"lowStockThreshold" json:"lowStockThreshold"`
	Category          string             `bson:"category" json:"category"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StockStatus recomputes the status from the current quantity.
func (i *InventoryItem) StockStatus() StockStatus {
	switch {
	case i.Quantity <= 0:
		return StockOut
	case i.Quantity <= i.LowStockThreshold:
		return StockLow
	default:
		return StockOK
	}
}

// MarshalJSON includes the derived stockStatus field.
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type alias InventoryItem
	return json.Marshal(struct {
		alias
		StockStatus StockStatus `json:"stockStatus"`
	}{alias(i), i.StockStatus()})
}
