package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dinehub/app/controllers"
	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/pkg/apperr"
	"github.com/shashiranjanraj/dinehub/pkg/auth"
	"github.com/shashiranjanraj/dinehub/pkg/middleware"
	"github.com/shashiranjanraj/dinehub/pkg/rbac"
	"github.com/shashiranjanraj/dinehub/pkg/router"
)

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (s *fakeOrderStore) Create(_ context.Context, order models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = order
	return order, nil
}

func (s *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return models.Order{}, apperr.ErrNotFound
	}
	return order, nil
}

func (s *fakeOrderStore) Find(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
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

func (s *fakeOrderStore) CompareAndSwapStatus(_ context.Context, id primitive.ObjectID, from, to models.Status) (models.Order, error) {
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

func (s *fakeOrderStore) seed(order models.Order) models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	s.orders[order.ID] = order
	return order
}

type nopPublisher struct{}

func (nopPublisher) PublishCreated(models.Order)       {}
func (nopPublisher) PublishStatusChanged(models.Order) {}

// newOrderAPI wires the order routes through the real auth and role
// middleware, backed by the fake store.
func newOrderAPI(store *fakeOrderStore) http.Handler {
	svc := services.NewOrderService(store, nopPublisher{})
	ctrl := controllers.NewOrderController(svc)

	anyStaff := rbac.HasRole("waiter", "counter", "kitchen")

	r := router.New()
	staff := r.Group("/api", middleware.Auth, anyStaff)
	staff.Get("/orders", "orders.list", ctrl.List)
	staff.Post("/orders", "orders.create", ctrl.Create)
	staff.Get("/orders/{id}", "orders.show", ctrl.Get)
	staff.Patch("/orders/{id}/status", "orders.status", ctrl.UpdateStatus)

	return r.Handler()
}

func bearerToken(t *testing.T, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(primitive.NewObjectID().Hex(), role, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, h http.Handler, method, path, authz, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderEndpoint(t *testing.T) {
	store := newFakeOrderStore()
	api := newOrderAPI(store)

	body := `{"type":"dine-in","tableNumber":7,"items":[{"menuItemId":"` +
		primitive.NewObjectID().Hex() + `","name":"Classic Burger","price":8,"quantity":2}]}`

	rec := doJSON(t, api, http.MethodPost, "/api/orders", bearerToken(t, "waiter"), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Data.Status)
	assert.Equal(t, 16.0, resp.Data.TotalAmount)
}

func TestCreateOrderValidationFailure(t *testing.T) {
	api := newOrderAPI(newFakeOrderStore())

	rec := doJSON(t, api, http.MethodPost, "/api/orders", bearerToken(t, "waiter"),
		`{"type":"dine-in","items":[]}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "items")
	assert.Contains(t, resp.Errors, "tableNumber")
}

func TestOrdersRequireAuth(t *testing.T) {
	api := newOrderAPI(newFakeOrderStore())

	rec := doJSON(t, api, http.MethodGet, "/api/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/api/orders", "Bearer garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateStatusAsCounter(t *testing.T) {
	store := newFakeOrderStore()
	api := newOrderAPI(store)

	order := store.seed(models.Order{Type: models.DineIn, Status: models.StatusPending})

	rec := doJSON(t, api, http.MethodPatch, "/api/orders/"+order.ID.Hex()+"/status",
		bearerToken(t, "counter"), `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusConfirmed, resp.Data.Status)
}

func TestUpdateStatusRoleFromTokenNotBody(t *testing.T) {
	store := newFakeOrderStore()
	api := newOrderAPI(store)

	order := store.seed(models.Order{Type: models.DineIn, Status: models.StatusPending})

	// A waiter cannot confirm even if the body claims otherwise.
	rec := doJSON(t, api, http.MethodPatch, "/api/orders/"+order.ID.Hex()+"/status",
		bearerToken(t, "waiter"), `{"status":"confirmed","role":"counter"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
}

func TestUpdateStatusIllegalEdge(t *testing.T) {
	store := newFakeOrderStore()
	api := newOrderAPI(store)

	order := store.seed(models.Order{Type: models.DineIn, Status: models.StatusPending})

	rec := doJSON(t, api, http.MethodPatch, "/api/orders/"+order.ID.Hex()+"/status",
		bearerToken(t, "counter"), `{"status":"delivered"}`)

	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestGetOrderNotFound(t *testing.T) {
	api := newOrderAPI(newFakeOrderStore())

	rec := doJSON(t, api, http.MethodGet, "/api/orders/"+primitive.NewObjectID().Hex(),
		bearerToken(t, "kitchen"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Malformed ids are indistinguishable from missing orders.
	rec = doJSON(t, api, http.MethodGet, "/api/orders/not-a-hex-id",
		bearerToken(t, "kitchen"), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrdersFilter(t *testing.T) {
	store := newFakeOrderStore()
	api := newOrderAPI(store)

	store.seed(models.Order{Type: models.DineIn, Status: models.StatusPending})
	store.seed(models.Order{Type: models.Pickup, Status: models.StatusConfirmed})

	rec := doJSON(t, api, http.MethodGet, "/api/orders?status=pending", bearerToken(t, "counter"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)

	rec = doJSON(t, api, http.MethodGet, "/api/orders?status=bogus", bearerToken(t, "counter"), "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
