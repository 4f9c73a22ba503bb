// Package graphql exposes a read-only query surface over the catalog and
// order listings, for dashboards that want to shape their own responses.
package graphql

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/dinehub/app/models"
)

// Queries is the read-side contract the schema resolves against.
type Queries interface {
	AvailableMenu(ctx context.Context) ([]models.MenuItem, error)
	AvailableMealPlans(ctx context.Context) ([]models.MealPlan, error)
	Orders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
}

var orderItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderItem",
	Fields: graphql.Fields{
		"name":     &graphql.Field{Type: graphql.String},
		"price":    &graphql.Field{Type: graphql.Float},
		"quantity": &graphql.Field{Type: graphql.Int},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.Order).ID.Hex(), nil
			},
		},
		"type":        &graphql.Field{Type: graphql.String},
		"tableNumber": &graphql.Field{Type: graphql.Int},
		"status":      &graphql.Field{Type: graphql.String},
		"totalAmount": &graphql.Field{Type: graphql.Float},
		"items":       &graphql.Field{Type: graphql.NewList(orderItemType)},
	},
})

var menuItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.MenuItem).ID.Hex(), nil
			},
		},
		"name":        &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"category":    &graphql.Field{Type: graphql.String},
		"image":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"isAvailable": &graphql.Field{Type: graphql.Boolean},
	},
})

var mealPlanType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MealPlan",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(models.MealPlan).ID.Hex(), nil
			},
		},
		"name":          &graphql.Field{Type: graphql.String},
		"description":   &graphql.Field{Type: graphql.String},
		"price":         &graphql.Field{Type: graphql.Float},
		"originalPrice": &graphql.Field{Type: graphql.Float},
		"category":      &graphql.Field{Type: graphql.String},
		"savingsPercent": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				plan := p.Source.(models.MealPlan)
				return plan.SavingsPercent(), nil
			},
		},
	},
})

// NewSchema builds the read-only schema against the given query backend.
func NewSchema(q Queries) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type: graphql.NewList(menuItemType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return q.AvailableMenu(p.Context)
				},
			},
			"mealPlans": &graphql.Field{
				Type: graphql.NewList(mealPlanType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return q.AvailableMealPlans(p.Context)
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
					"type":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := models.OrderFilter{}
					if s, ok := p.Args["status"].(string); ok {
						filter.Status = models.Status(s)
					}
					if t, ok := p.Args["type"].(string); ok {
						filter.Type = models.OrderType(t)
					}
					return q.Orders(p.Context, filter)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
