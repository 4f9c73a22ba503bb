package controllers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/app/repositories"
	"github.com/shashiranjanraj/dinehub/pkg/bind"
	"github.com/shashiranjanraj/dinehub/pkg/cache"
	"github.com/shashiranjanraj/dinehub/pkg/logger"
	"github.com/shashiranjanraj/dinehub/pkg/response"
)

const (
	menuCacheKey      = "menu:available"
	mealPlansCacheKey = "meal_plans:available"
	catalogCacheTTL   = 5 * time.Minute
)

// CatalogController serves the menu and meal-plan catalog. Reads go through
// the cache; writes invalidate it.
type CatalogController struct {
	menu      *repositories.MenuRepository
	mealPlans *repositories.MealPlanRepository
}

func NewCatalogController(menu *repositories.MenuRepository, mealPlans *repositories.MealPlanRepository) *CatalogController {
	return &CatalogController{menu: menu, mealPlans: mealPlans}
}

// ListMenu handles GET /api/menu.
func (c *CatalogController) ListMenu(w http.ResponseWriter, r *http.Request) {
	var cached []models.MenuItem
	if cache.Get(menuCacheKey, &cached) {
		response.Success(w, cached)
		return
	}

	items, err := c.menu.FindAvailable(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	if err := cache.Set(menuCacheKey, items, catalogCacheTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("cache set failed", "key", menuCacheKey, "error", err)
	}
	response.Success(w, items)
}

type ingredientInput struct {
	InventoryID  string  `json:"inventoryId" validate:"required"`
	QuantityUsed float64 `json:"quantityUsed" validate:"gte=0"`
}

type menuItemInput struct {
	Name        string            `json:"name" validate:"required,max=100"`
	Price       float64           `json:"price" validate:"gte=0"`
	Category    string            `json:"category" validate:"required,max=50"`
	Image       string            `json:"image"`
	Description string            `json:"description" validate:"max=500"`
	Ingredients []ingredientInput `json:"ingredients"`
	IsAvailable *bool             `json:"isAvailable"`
}

// CreateMenuItem handles POST /api/menu.
func (c *CatalogController) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var input menuItemInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	ingredients := make([]models.IngredientUsage, 0, len(input.Ingredients))
	for _, ing := range input.Ingredients {
		id, err := primitive.ObjectIDFromHex(ing.InventoryID)
		if err != nil {
			response.ValidationError(w, map[string]string{"ingredients": "invalid inventory id " + ing.InventoryID})
			return
		}
		ingredients = append(ingredients, models.IngredientUsage{InventoryID: id, QuantityUsed: ing.QuantityUsed})
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	item, err := c.menu.Create(r.Context(), models.MenuItem{
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Image:       input.Image,
		Description: input.Description,
		Ingredients: ingredients,
		IsAvailable: available,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	if err := cache.Del(menuCacheKey); err != nil {
		logger.WithCtx(r.Context()).Warn("cache invalidation failed", "key", menuCacheKey, "error", err)
	}
	response.Created(w, item)
}

// ListMealPlans handles GET /api/meal-plans.
func (c *CatalogController) ListMealPlans(w http.ResponseWriter, r *http.Request) {
	var cached []models.MealPlan
	if cache.Get(mealPlansCacheKey, &cached) {
		response.Success(w, cached)
		return
	}

	plans, err := c.mealPlans.FindAvailable(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	if err := cache.Set(mealPlansCacheKey, plans, catalogCacheTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("cache set failed", "key", mealPlansCacheKey, "error", err)
	}
	response.Success(w, plans)
}

type mealPlanItemInput struct {
	MenuItemID string `json:"menuItemId" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gte=1"`
}

type mealPlanInput struct {
	Name          string              `json:"name" validate:"required,max=100"`
	Description   string              `json:"description" validate:"max=500"`
	Price         float64             `json:"price" validate:"gte=0"`
	OriginalPrice float64             `json:"originalPrice" validate:"gte=0"`
	Items         []mealPlanItemInput `json:"items" validate:"required"`
	Image         string              `json:"image"`
	Category      string              `json:"category" validate:"required,max=50"`
	IsAvailable   *bool               `json:"isAvailable"`
}

// CreateMealPlan handles POST /api/meal-plans.
func (c *CatalogController) CreateMealPlan(w http.ResponseWriter, r *http.Request) {
	var input mealPlanInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(input.Items) == 0 {
		response.ValidationError(w, map[string]string{"items": "items must not be empty"})
		return
	}

	items := make([]models.MealPlanItem, 0, len(input.Items))
	for _, it := range input.Items {
		id, err := primitive.ObjectIDFromHex(it.MenuItemID)
		if err != nil {
			response.ValidationError(w, map[string]string{"items": "invalid menu item id " + it.MenuItemID})
			return
		}
		items = append(items, models.MealPlanItem{MenuItemID: id, Quantity: it.Quantity})
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	plan, err := c.mealPlans.Create(r.Context(), models.MealPlan{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Items:         items,
		Image:         input.Image,
		Category:      input.Category,
		IsAvailable:   available,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	if err := cache.Del(mealPlansCacheKey); err != nil {
		logger.WithCtx(r.Context()).Warn("cache invalidation failed", "key", mealPlansCacheKey, "error", err)
	}
	response.Created(w, plan)
}
