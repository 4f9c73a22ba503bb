package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/collection"
)

// MenuFinder resolves menu items for the stock advisor.
type MenuFinder interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MenuItem, error)
}

// InventoryFinder resolves inventory items for the stock advisor.
type InventoryFinder interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.InventoryItem, error)
}

// StockService answers "can this order be fulfilled right now?" without
// touching inventory. It is advisory only: nothing is reserved, so two
// concurrent orders can both pass and jointly overdraw real stock.
type StockService struct {
	menu      MenuFinder
	inventory InventoryFinder

	// strict controls the unknown-menu-item policy: false skips unmatched
	// ids silently, true reports them as issues.
	strict bool
}

func NewStockService(menu MenuFinder, inventory InventoryFinder, strict bool) *StockService {
	return &StockService{menu: menu, inventory: inventory, strict: strict}
}

// CheckItem is one candidate line: a menu item and the quantity wanted.
type CheckItem struct {
	MenuItemID primitive.ObjectID `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
}

// StockIssue describes one ingredient shortfall.
type StockIssue struct {
	Item       string  `json:"item"`
	Ingredient string  `json:"ingredient"`
	Available  float64 `json:"available"`
	Needed     float64 `json:"needed"`
}

// CheckResult is the advisor's answer.
type CheckResult struct {
	CanFulfill bool         `json:"canFulfill"`
	Issues     []StockIssue `json:"issues"`
}

// CheckFulfillable resolves each line's ingredient list and compares
// needed = quantityUsed × orderedQuantity against the on-hand quantity.
func (s *StockService) CheckFulfillable(ctx context.Context, items []CheckItem) (CheckResult, error) {
	menuIDs := collection.Map(items, func(i CheckItem) primitive.ObjectID { return i.MenuItemID })
	menuItems, err := s.menu.FindByIDs(ctx, menuIDs)
	if err != nil {
		return CheckResult{}, err
	}

	// One inventory fetch for all ingredients across all matched items.
	var ingredientIDs []primitive.ObjectID
	for _, m := range menuItems {
		for _, ing := range m.Ingredients {
			ingredientIDs = append(ingredientIDs, ing.InventoryID)
		}
	}

	onHand := map[primitive.ObjectID]models.InventoryItem{}
	if len(ingredientIDs) > 0 {
		stock, err := s.inventory.FindByIDs(ctx, ingredientIDs)
		if err != nil {
			return CheckResult{}, err
		}
		for _, item := range stock {
			onHand[item.ID] = item
		}
	}

	issues := []StockIssue{}
	for _, line := range items {
		menuItem, found := collection.First(menuItems, func(m models.MenuItem) bool {
			return m.ID == line.MenuItemID
		})
		if !found {
			if s.strict {
				issues = append(issues, StockIssue{
					Item:       line.MenuItemID.Hex(),
					Ingredient: "unknown menu item",
				})
			}
			continue
		}

		for _, ing := range menuItem.Ingredients {
			stock, tracked := onHand[ing.InventoryID]
			if !tracked {
				// Dangling inventory reference, treated as unconstrained.
				continue
			}

			needed := ing.QuantityUsed * float64(line.Quantity)
			if stock.Quantity < needed {
				issues = append(issues, StockIssue{
					Item:       menuItem.Name,
					Ingredient: stock.Name,
					Available:  stock.Quantity,
					Needed:     needed,
				})
			}
		}
	}

	return CheckResult{CanFulfill: len(issues) == 0, Issues: issues}, nil
}
