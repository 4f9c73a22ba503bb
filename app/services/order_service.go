package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/events"
	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/metrics"
)

// OrderStore is the persistence contract the order service depends on.
// *repositories.OrderRepository is the production implementation.
type OrderStore interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	Find(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	CompareAndSwapStatus(ctx context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error)
}

// OrderService owns order creation policy and the status state machine.
// It is the single place a status change is legally applied.
type OrderService struct {
	store     OrderStore
	publisher events.Publisher
}

func NewOrderService(store OrderStore, publisher events.Publisher) *OrderService {
	return &OrderService{store: store, publisher: publisher}
}

// CreateOrderInput is the payload accepted from the waiter/counter UIs.
// TotalAmount sent by clients is ignored; the server computes the total
// from the item snapshots.
type CreateOrderInput struct {
	Type        models.OrderType   `json:"type"`
	TableNumber *int               `json:"tableNumber,omitempty"`
	Items       []models.OrderItem `json:"items"`
}

// Create validates the input, applies the creation-time status policy
// (dine-in starts pending, pickup starts confirmed), persists the order,
// and announces it on the live channel before returning.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (models.Order, error) {
	if err := validateCreate(input); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		Type:   input.Type,
		Items:  input.Items,
		Status: input.Type.InitialStatus(),
	}
	if input.Type == models.DineIn {
		order.TableNumber = input.TableNumber
	}
	order.TotalAmount = order.Total()

	created, err := s.store.Create(ctx, order)
	if err != nil {
		return models.Order{}, err
	}

	// Broadcast is attempted synchronously so the caller's success response
	// cannot outrun the counter/kitchen screens; delivery itself is
	// best-effort and never fails the creation.
	s.publisher.PublishCreated(created)
	metrics.OrdersCreated.WithLabelValues(string(created.Type)).Inc()

	return created, nil
}

func validateCreate(input CreateOrderInput) error {
	errs := map[string]string{}

	if !input.Type.IsValid() {
		errs["type"] = fmt.Sprintf("The type must be %q or %q.", models.DineIn, models.Pickup)
	}
	if len(input.Items) == 0 {
		errs["items"] = "The order must contain at least one item."
	}
	for i, item := range input.Items {
		if item.Quantity < 1 {
			errs[fmt.Sprintf("items.%d.quantity", i)] = "The quantity must be at least 1."
		}
		if item.Name == "" {
			errs[fmt.Sprintf("items.%d.name", i)] = "The item name is required."
		}
		if item.Price < 0 {
			errs[fmt.Sprintf("items.%d.price", i)] = "The price must not be negative."
		}
	}
	if input.Type == models.DineIn && (input.TableNumber == nil || *input.TableNumber < 1) {
		errs["tableNumber"] = "The table number is required for dine-in orders."
	}

	if len(errs) > 0 {
		return &apperr.ValidationError{Fields: errs}
	}
	return nil
}

// Get returns one order by id.
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	return s.store.FindByID(ctx, id)
}

// List returns orders matching the filter, newest first.
func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, apperr.NewValidation("status", "The selected status is invalid.")
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, apperr.NewValidation("type", "The selected type is invalid.")
	}
	return s.store.Find(ctx, filter)
}

// Transition moves an order to target on behalf of role.
//
// The edge is validated against the persisted status (never a client's
// cached copy) and applied with a compare-and-swap, so of two concurrent
// conflicting transitions exactly one wins; the loser gets an
// InvalidTransitionError against the fresh status. On success exactly one
// broadcast is attempted before returning.
func (s *OrderService) Transition(ctx context.Context, id primitive.ObjectID, target models.Status, role models.Role) (models.Order, error) {
	if !target.IsValid() {
		return models.Order{}, apperr.NewValidation("status", "The selected status is invalid.")
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		metrics.TransitionsRejected.WithLabelValues("not_found").Inc()
		return models.Order{}, err
	}

	if !current.Status.CanTransitionTo(target) {
		metrics.TransitionsRejected.WithLabelValues("invalid_edge").Inc()
		return models.Order{}, &apperr.InvalidTransitionError{From: current.Status.String(), To: target.String()}
	}
	if !current.Status.RoleMayTransition(target, role) {
		metrics.TransitionsRejected.WithLabelValues("forbidden").Inc()
		return models.Order{}, apperr.ErrForbidden
	}

	updated, err := s.store.CompareAndSwapStatus(ctx, id, current.Status, target)
	if errors.Is(err, apperr.ErrNotFound) {
		// Either the order vanished or a concurrent transition won the
		// race. Re-read to tell the two apart.
		fresh, ferr := s.store.FindByID(ctx, id)
		if ferr != nil {
			metrics.TransitionsRejected.WithLabelValues("not_found").Inc()
			return models.Order{}, ferr
		}
		metrics.TransitionsRejected.WithLabelValues("conflict").Inc()
		return models.Order{}, &apperr.InvalidTransitionError{From: fresh.Status.String(), To: target.String()}
	}
	if err != nil {
		return models.Order{}, err
	}

	s.publisher.PublishStatusChanged(updated)
	metrics.TransitionsApplied.WithLabelValues(current.Status.String(), target.String()).Inc()

	return updated, nil
}
