package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/app/repositories"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/pkg/bind"
	"github.com/shashiranjanraj/dinehub/pkg/response"
)

type InventoryController struct {
	repo  *repositories.InventoryRepository
	stock *services.StockService
}

func NewInventoryController(repo *repositories.InventoryRepository, stock *services.StockService) *InventoryController {
	return &InventoryController{repo: repo, stock: stock}
}

// List handles GET /api/inventory.
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.repo.FindAll(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, items)
}

type inventoryInput struct {
	Name              string  `json:"name" validate:"required,max=100"`
	Quantity          float64 `json:"quantity" validate:"gte=0"`
	Unit              string  `json:"unit" validate:"required,max=20"`
	LowStockThreshold float64 `json:"lowStockThreshold" validate:"gte=0"`
	Category          string  `json:"category" validate:"required,in=ingredient,packaging,other"`
}

// Create handles POST /api/inventory.
func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var input inventoryInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.repo.Create(r.Context(), models.InventoryItem{
		Name:              input.Name,
		Quantity:          input.Quantity,
		Unit:              input.Unit,
		LowStockThreshold: input.LowStockThreshold,
		Category:          input.Category,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, item)
}

type inventoryPatch struct {
	Name              *string  `json:"name"`
	Quantity          *float64 `json:"quantity" validate:"nullable,gte=0"`
	Unit              *string  `json:"unit"`
	LowStockThreshold *float64 `json:"lowStockThreshold" validate:"nullable,gte=0"`
	Category          *string  `json:"category" validate:"nullable,in=ingredient,packaging,other"`
}

// Update handles PATCH /api/inventory/{id}: sets only the fields present.
func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var patch inventoryPatch
	if errs, err := bind.JSON(r, &patch); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	fields := bson.M{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Quantity != nil {
		fields["quantity"] = *patch.Quantity
	}
	if patch.Unit != nil {
		fields["unit"] = *patch.Unit
	}
	if patch.LowStockThreshold != nil {
		fields["lowStockThreshold"] = *patch.LowStockThreshold
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if len(fields) == 0 {
		response.Error(w, http.StatusBadRequest, "No fields to update")
		return
	}

	item, err := c.repo.Update(r.Context(), id, fields)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

type adjustInput struct {
	Adjustment float64 `json:"adjustment" validate:"required"`
}

// Adjust handles POST /api/inventory/{id}/adjust: relative restock or
// consumption correction, applied atomically.
func (c *InventoryController) Adjust(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var input adjustInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.repo.Adjust(r.Context(), id, input.Adjustment)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, item)
}

type checkInput struct {
	Items []services.CheckItem `json:"items"`
}

// Check handles POST /api/inventory/check: the advisory fulfillability
// check. Read-only, side-effect-free.
func (c *InventoryController) Check(w http.ResponseWriter, r *http.Request) {
	var input checkInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := c.stock.CheckFulfillable(r.Context(), input.Items)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, result)
}
