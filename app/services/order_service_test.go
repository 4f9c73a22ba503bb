package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
)

// memStore is an in-memory OrderStore with the same compare-and-swap
// semantics as the Mongo repository: the swap applies only if the stored
// status still equals the expected one, otherwise it reports not-found.
type memStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newMemStore() *memStore {
	return &memStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (s *memStore) Create(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = order
	return order, nil
}

func (s *memStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, apperr.ErrNotFound
	}
	return order, nil
}

func (s *memStore) Find(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (s *memStore) CompareAndSwapStatus(_ context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok || order.Status != from {
		return models.Order{}, apperr.ErrNotFound
	}
	order.Status = to
	s.orders[id] = order
	return order, nil
}

func (s *memStore) put(order models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	s.orders[order.ID] = order
	return order
}

// recorder captures every broadcast the service attempts.
type recorder struct {
	mu      sync.Mutex
	created []models.Order
	changed []models.Order
}

func (r *recorder) PublishCreated(order models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, order)
}

func (r *recorder) PublishStatusChanged(order models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, order)
}

func (r *recorder) changedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changed)
}

func intPtr(n int) *int { return &n }

func burgerItem(qty int) models.OrderItem {
	return models.OrderItem{
		MenuItemID: primitive.NewObjectID(),
		Name:       "Classic Burger",
		Price:      8,
		Quantity:   qty,
	}
}

func TestOrderService_Create_DineInStartsPending(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	svc := services.NewOrderService(store, rec)

	order, err := svc.Create(context.Background(), services.CreateOrderInput{
		Type:        models.DineIn,
		TableNumber: intPtr(4),
		Items:       []models.OrderItem{burgerItem(2)},
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	require.NotNil(t, order.TableNumber)
	assert.Equal(t, 4, *order.TableNumber)
	assert.Equal(t, 16.0, order.TotalAmount)
	assert.Len(t, rec.created, 1)
}

func TestOrderService_Create_PickupStartsConfirmed(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	svc := services.NewOrderService(store, rec)

	order, err := svc.Create(context.Background(), services.CreateOrderInput{
		Type:  models.Pickup,
		Items: []models.OrderItem{burgerItem(1)},
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, order.Status)
	assert.Nil(t, order.TableNumber)
}

func TestOrderService_Create_TotalIgnoresClientAmount(t *testing.T) {
	store := newMemStore()
	svc := services.NewOrderService(store, &recorder{})

	order, err := svc.Create(context.Background(), services.CreateOrderInput{
		Type: models.Pickup,
		Items: []models.OrderItem{
			{MenuItemID: primitive.NewObjectID(), Name: "Fries", Price: 4, Quantity: 2},
			{MenuItemID: primitive.NewObjectID(), Name: "Soda (Large)", Price: 3, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 11.0, order.TotalAmount)
}

func TestOrderService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input services.CreateOrderInput
		field string
	}{
		{
			"unknown type",
			services.CreateOrderInput{Type: "delivery", Items: []models.OrderItem{burgerItem(1)}},
			"type",
		},
		{
			"empty items",
			services.CreateOrderInput{Type: models.Pickup},
			"items",
		},
		{
			"zero quantity",
			services.CreateOrderInput{Type: models.Pickup, Items: []models.OrderItem{burgerItem(0)}},
			"items.0.quantity",
		},
		{
			"negative price",
			services.CreateOrderInput{Type: models.Pickup, Items: []models.OrderItem{
				{MenuItemID: primitive.NewObjectID(), Name: "Fries", Price: -1, Quantity: 1},
			}},
			"items.0.price",
		},
		{
			"dine-in without table",
			services.CreateOrderInput{Type: models.DineIn, Items: []models.OrderItem{burgerItem(1)}},
			"tableNumber",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			rec := &recorder{}
			svc := services.NewOrderService(store, rec)

			_, err := svc.Create(context.Background(), tt.input)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Empty(t, rec.created, "rejected orders must not be broadcast")
		})
	}
}

func TestOrderService_Transition_HappyPath(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	svc := services.NewOrderService(store, rec)

	order := store.put(models.Order{Type: models.DineIn, Status: models.StatusPending})

	steps := []struct {
		target models.Status
		role   models.Role
	}{
		{models.StatusConfirmed, models.RoleCounter},
		{models.StatusPreparing, models.RoleKitchen},
		{models.StatusCompleted, models.RoleKitchen},
		{models.StatusDelivered, models.RoleWaiter},
	}

	for _, step := range steps {
		updated, err := svc.Transition(context.Background(), order.ID, step.target, step.role)
		require.NoError(t, err, "transition to %s as %s", step.target, step.role)
		assert.Equal(t, step.target, updated.Status)
	}

	assert.Equal(t, len(steps), rec.changedCount(), "one broadcast per applied transition")
}

func TestOrderService_Transition_IllegalEdge(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	svc := services.NewOrderService(store, rec)

	order := store.put(models.Order{Type: models.DineIn, Status: models.StatusPending})

	_, err := svc.Transition(context.Background(), order.ID, models.StatusDelivered, models.RoleCounter)

	var terr *apperr.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "pending", terr.From)
	assert.Equal(t, "delivered", terr.To)
	assert.Zero(t, rec.changedCount())
}

func TestOrderService_Transition_NoOpRejected(t *testing.T) {
	store := newMemStore()
	svc := services.NewOrderService(store, &recorder{})

	order := store.put(models.Order{Type: models.DineIn, Status: models.StatusPending})

	_, err := svc.Transition(context.Background(), order.ID, models.StatusPending, models.RoleCounter)

	var terr *apperr.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
}

func TestOrderService_Transition_WrongRole(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	svc := services.NewOrderService(store, rec)

	order := store.put(models.Order{Type: models.DineIn, Status: models.StatusPending})

	_, err := svc.Transition(context.Background(), order.ID, models.StatusConfirmed, models.RoleWaiter)

	require.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Zero(t, rec.changedCount())

	// The order is untouched.
	fresh, ferr := store.FindByID(context.Background(), order.ID)
	require.NoError(t, ferr)
	assert.Equal(t, models.StatusPending, fresh.Status)
}

func TestOrderService_Transition_UnknownStatus(t *testing.T) {
	store := newMemStore()
	svc := services.NewOrderService(store, &recorder{})

	order := store.put(models.Order{Type: models.DineIn, Status: models.StatusPending})

	_, err := svc.Transition(context.Background(), order.ID, "cancelled", models.RoleCounter)

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOrderService_Transition_MissingOrder(t *testing.T) {
	store := newMemStore()
	svc := services.NewOrderService(store, &recorder{})

	_, err := svc.Transition(context.Background(), primitive.NewObjectID(), models.StatusConfirmed, models.RoleCounter)

	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderService_Transition_ConcurrentConfirmReject(t *testing.T) {
	store := newMemStore()
	rec := &recorder{}
	svc := services.NewOrderService(store, rec)

	order := store.put(models.Order{Type: models.DineIn, Status: models.StatusPending})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	targets := []models.Status{models.StatusConfirmed, models.StatusRejected}

	for i, target := range targets {
		wg.Add(1)
		go func(i int, target models.Status) {
			defer wg.Done()
			_, errs[i] = svc.Transition(context.Background(), order.ID, target, models.RoleCounter)
		}(i, target)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			var terr *apperr.InvalidTransitionError
			assert.ErrorAs(t, err, &terr, "loser must see an invalid transition, got %v", err)
		}
	}

	assert.Equal(t, 1, winners, "exactly one of two conflicting transitions may win")
	assert.Equal(t, 1, rec.changedCount(), "only the winner is broadcast")

	fresh, err := store.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Contains(t, targets, fresh.Status)
	assert.True(t, fresh.Status.IsTerminal() || fresh.Status == models.StatusConfirmed)
}

func TestOrderService_List_RejectsUnknownFilter(t *testing.T) {
	store := newMemStore()
	svc := services.NewOrderService(store, &recorder{})

	_, err := svc.List(context.Background(), models.OrderFilter{Status: "bogus"})
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.List(context.Background(), models.OrderFilter{Type: "drive-thru"})
	require.ErrorAs(t, err, &verr)
}

func TestOrderService_List_Filters(t *testing.T) {
	store := newMemStore()
	svc := services.NewOrderService(store, &recorder{})

	store.put(models.Order{Type: models.DineIn, Status: models.StatusPending})
	store.put(models.Order{Type: models.Pickup, Status: models.StatusConfirmed})
	store.put(models.Order{Type: models.DineIn, Status: models.StatusConfirmed})

	confirmed, err := svc.List(context.Background(), models.OrderFilter{Status: models.StatusConfirmed})
	require.NoError(t, err)
	assert.Len(t, confirmed, 2)

	dineInConfirmed, err := svc.List(context.Background(), models.OrderFilter{
		Status: models.StatusConfirmed,
		Type:   models.DineIn,
	})
	require.NoError(t, err)
	assert.Len(t, dineInConfirmed, 1)
}
