package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderType distinguishes table service from walk-up orders.
type OrderType string

const (
	DineIn OrderType = "dine-in"
	Pickup OrderType = "pickup"
)

// IsValid reports whether t is a known order type.
func (t OrderType) IsValid() bool { return t == DineIn || t == Pickup }

// InitialStatus is the creation-time status policy: dine-in orders wait for
// counter approval, pickup orders placed by staff are self-approved.
func (t OrderType) InitialStatus() Status {
	if t == Pickup {
		return StatusConfirmed
	}
	return StatusPending
}

// OrderItem is one line of an order. Name and Price are snapshots taken at
// order time; later menu edits must never change an existing order's total.
type OrderItem struct {
	MenuItemID primitive.ObjectID `bson:"menuItemId" json:"menuItemId"`
	Name       string             `bson:"name" json:"name"`
	Price      float64            `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

// Order is a customer order document.
type Order struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        OrderType          `bson:"type" json:"type"`
	TableNumber *int               `bson:"tableNumber,omitempty" json:"tableNumber,omitempty"`
	Items       []OrderItem        `bson:"items" json:"items"`
	Status      Status             `bson:"status" json:"status"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Total sums price × quantity over the items. Used once, at creation;
// the stored TotalAmount is never recomputed afterwards.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// OrderFilter narrows order listings. Zero values mean "any".
type OrderFilter struct {
	Status Status
	Type   OrderType
}
