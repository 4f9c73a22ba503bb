package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/pkg/bind"
	"github.com/shashiranjanraj/dinehub/pkg/logger"
	"github.com/shashiranjanraj/dinehub/pkg/middleware"
	"github.com/shashiranjanraj/dinehub/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Create handles POST /api/orders.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderInput
	if _, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.service.Create(r.Context(), input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order created",
		"order_id", order.ID.Hex(),
		"type", order.Type,
		"status", order.Status,
		"total", order.TotalAmount,
	)
	response.Created(w, order)
}

// List handles GET /api/orders?status=&type=.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	filter := models.OrderFilter{
		Status: models.Status(r.URL.Query().Get("status")),
		Type:   models.OrderType(r.URL.Query().Get("type")),
	}

	orders, err := c.service.List(r.Context(), filter)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, orders)
}

// Get handles GET /api/orders/{id}.
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	order, err := c.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PATCH /api/orders/{id}/status. The caller's role
// comes from the verified token, never from the request body.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var input statusInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	identity, ok := middleware.IdentityFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	order, err := c.service.Transition(r.Context(), id, models.Status(input.Status), models.Role(identity.Role))
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order transitioned",
		"order_id", order.ID.Hex(),
		"status", order.Status,
		"actor", identity.Username,
		"role", identity.Role,
	)
	response.Success(w, order)
}
