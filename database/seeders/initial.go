package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
	Register("catalog", SeedCatalog)
}

// SeedUsers upserts one demo account per staff role, all with the
// password "123456".
func SeedUsers(ctx context.Context, db *mongo.Database) error {
	hash, err := auth.HashPassword("123456")
	if err != nil {
		return err
	}

	users := []models.User{
		{Username: "counter", Role: models.RoleCounter},
		{Username: "waiter", Role: models.RoleWaiter},
		{Username: "kitchen", Role: models.RoleKitchen},
	}

	col := db.Collection("users")
	for _, u := range users {
		update := bson.M{"$set": bson.M{
			"username": u.Username,
			"password": hash,
			"role":     u.Role,
		}, "$setOnInsert": bson.M{
			"createdAt": time.Now().UTC(),
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := col.UpdateOne(ctx, bson.M{"username": u.Username}, update, opts); err != nil {
			return err
		}
	}
	return nil
}

type seedInventory struct {
	name      string
	quantity  float64
	unit      string
	threshold float64
}

type seedIngredient struct {
	inventory string
	used      float64
}

type seedMenuItem struct {
	name        string
	price       float64
	category    string
	image       string
	description string
	ingredients []seedIngredient
}

type seedPlanItem struct {
	menuItem string
	quantity int
}

type seedMealPlan struct {
	name          string
	description   string
	price         float64
	originalPrice float64
	image         string
	category      string
	items         []seedPlanItem
}

// SeedCatalog upserts the demo inventory, menu and meal-plan catalog.
// Menu ingredients reference inventory by name and meal plans reference
// menu items by name, both resolved to ids at insert time, so the seeder
// is safe to rerun.
func SeedCatalog(ctx context.Context, db *mongo.Database) error {
	now := time.Now().UTC()

	inventory := []seedInventory{
		{"Burger Patty", 50, "pcs", 10},
		{"Burger Buns", 60, "pcs", 15},
		{"Cheese Slice", 100, "pcs", 20},
		{"Lettuce", 30, "pcs", 10},
		{"Tomato", 40, "pcs", 10},
		{"French Fries", 80, "portions", 20},
		{"Chicken Nuggets", 100, "pcs", 25},
		{"Pizza Dough", 25, "pcs", 8},
		{"Mozzarella", 40, "portions", 10},
		{"Pepperoni", 60, "portions", 15},
		{"Soda Syrup", 20, "liters", 5},
		{"Ice Cream", 30, "scoops", 10},
		{"Salad Mix", 25, "portions", 8},
	}

	invCol := db.Collection("inventory")
	invIDs := map[string]primitive.ObjectID{}
	for _, inv := range inventory {
		update := bson.M{"$set": bson.M{
			"name":              inv.name,
			"quantity":          inv.quantity,
			"unit":              inv.unit,
			"lowStockThreshold": inv.threshold,
			"category":          "ingredient",
			"updatedAt":         now,
		}, "$setOnInsert": bson.M{
			"createdAt": now,
		}}
		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

		var doc models.InventoryItem
		if err := invCol.FindOneAndUpdate(ctx, bson.M{"name": inv.name}, update, opts).Decode(&doc); err != nil {
			return err
		}
		invIDs[inv.name] = doc.ID
	}

	menu := []seedMenuItem{
		{"Classic Burger", 8, "Burgers", "🍔", "Juicy beef patty with fresh veggies", []seedIngredient{
			{"Burger Patty", 1}, {"Burger Buns", 1}, {"Lettuce", 1}, {"Tomato", 1},
		}},
		{"Cheese Burger", 10, "Burgers", "🍔", "Classic burger with melted cheese", []seedIngredient{
			{"Burger Patty", 1}, {"Burger Buns", 1}, {"Cheese Slice", 2}, {"Lettuce", 1},
		}},
		{"Double Burger", 14, "Burgers", "🍔", "Two patties, double the flavor", []seedIngredient{
			{"Burger Patty", 2}, {"Burger Buns", 1}, {"Cheese Slice", 2},
		}},
		{"French Fries", 4, "Sides", "🍟", "Crispy golden fries", []seedIngredient{
			{"French Fries", 1},
		}},
		{"Chicken Nuggets (6pc)", 6, "Sides", "🍗", "Crispy chicken nuggets", []seedIngredient{
			{"Chicken Nuggets", 6},
		}},
		{"Pepperoni Pizza", 15, "Pizza", "🍕", "Classic pepperoni with mozzarella", []seedIngredient{
			{"Pizza Dough", 1}, {"Mozzarella", 2}, {"Pepperoni", 1},
		}},
		{"Cheese Pizza", 12, "Pizza", "🍕", "Simple and delicious cheese pizza", []seedIngredient{
			{"Pizza Dough", 1}, {"Mozzarella", 3},
		}},
		{"Soda (Large)", 3, "Drinks", "🥤", "Refreshing carbonated drink", []seedIngredient{
			{"Soda Syrup", 0.3},
		}},
		{"Soda (Medium)", 2, "Drinks", "🥤", "Refreshing carbonated drink", []seedIngredient{
			{"Soda Syrup", 0.2},
		}},
		{"Ice Cream Sundae", 5, "Desserts", "🍨", "Creamy vanilla ice cream", []seedIngredient{
			{"Ice Cream", 2},
		}},
		{"Garden Salad", 7, "Healthy", "🥗", "Fresh mixed greens", []seedIngredient{
			{"Salad Mix", 1},
		}},
	}

	menuCol := db.Collection("menu_items")
	menuIDs := map[string]primitive.ObjectID{}
	for _, m := range menu {
		ingredients := make([]models.IngredientUsage, 0, len(m.ingredients))
		for _, ing := range m.ingredients {
			ingredients = append(ingredients, models.IngredientUsage{
				InventoryID:  invIDs[ing.inventory],
				QuantityUsed: ing.used,
			})
		}

		update := bson.M{"$set": bson.M{
			"name":        m.name,
			"price":       m.price,
			"category":    m.category,
			"image":       m.image,
			"description": m.description,
			"ingredients": ingredients,
			"isAvailable": true,
			"updatedAt":   now,
		}, "$setOnInsert": bson.M{
			"createdAt": now,
		}}
		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

		var doc models.MenuItem
		if err := menuCol.FindOneAndUpdate(ctx, bson.M{"name": m.name}, update, opts).Decode(&doc); err != nil {
			return err
		}
		menuIDs[m.name] = doc.ID
	}

	plans := []seedMealPlan{
		{"Value Meal #1", "Classic Burger + Fries + Medium Drink", 12, 14, "🍔", "value", []seedPlanItem{
			{"Classic Burger", 1}, {"French Fries", 1}, {"Soda (Medium)", 1},
		}},
		{"Cheese Lover Combo", "Cheese Burger + Fries + Large Drink", 15, 17, "🧀", "value", []seedPlanItem{
			{"Cheese Burger", 1}, {"French Fries", 1}, {"Soda (Large)", 1},
		}},
		{"Double Stack Meal", "Double Burger + Fries + Large Drink", 18, 21, "🍔", "premium", []seedPlanItem{
			{"Double Burger", 1}, {"French Fries", 1}, {"Soda (Large)", 1},
		}},
		{"Nuggets Box", "Nuggets (6pc) + Fries + Medium Drink", 10, 12, "🍗", "kids", []seedPlanItem{
			{"Chicken Nuggets (6pc)", 1}, {"French Fries", 1}, {"Soda (Medium)", 1},
		}},
		{"Family Feast", "2 Cheese Burgers + 2 Nuggets + 2 Fries + 2 Large Drinks", 35, 44, "👨‍👩‍👧‍👦", "family", []seedPlanItem{
			{"Cheese Burger", 2}, {"Chicken Nuggets (6pc)", 2}, {"French Fries", 2}, {"Soda (Large)", 2},
		}},
		{"Pizza Party", "Pepperoni Pizza + Cheese Pizza + 4 Large Drinks", 32, 39, "🍕", "family", []seedPlanItem{
			{"Pepperoni Pizza", 1}, {"Cheese Pizza", 1}, {"Soda (Large)", 4},
		}},
	}

	planCol := db.Collection("meal_plans")
	for _, p := range plans {
		items := make([]models.MealPlanItem, 0, len(p.items))
		for _, it := range p.items {
			items = append(items, models.MealPlanItem{
				MenuItemID: menuIDs[it.menuItem],
				Quantity:   it.quantity,
			})
		}

		update := bson.M{"$set": bson.M{
			"name":          p.name,
			"description":   p.description,
			"price":         p.price,
			"originalPrice": p.originalPrice,
			"items":         items,
			"image":         p.image,
			"category":      p.category,
			"isAvailable":   true,
			"updatedAt":     now,
		}, "$setOnInsert": bson.M{
			"createdAt": now,
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := planCol.UpdateOne(ctx, bson.M{"name": p.name}, update, opts); err != nil {
			return err
		}
	}

	return nil
}
