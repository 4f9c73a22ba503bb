package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/dinehub/pkg/router"
)

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}
}

func get(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBasicRouting(t *testing.T) {
	r := router.New()
	r.Get("/ping", "ping", ok("pong"))

	rec := get(t, r.Handler(), http.MethodGet, "/ping")
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestMethodMismatch(t *testing.T) {
	r := router.New()
	r.Get("/orders", "orders.list", ok("list"))

	rec := get(t, r.Handler(), http.MethodPost, "/orders")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestGroupPrefixing(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	orders := api.Group("/orders")
	orders.Get("", "orders.list", ok("list"))
	orders.Patch("/{id}/status", "orders.status", ok("patched"))

	if rec := get(t, r.Handler(), http.MethodGet, "/api/orders"); rec.Code != http.StatusOK {
		t.Errorf("nested group GET failed: %d", rec.Code)
	}
	if rec := get(t, r.Handler(), http.MethodPatch, "/api/orders/abc/status"); rec.Code != http.StatusOK {
		t.Errorf("nested group PATCH failed: %d", rec.Code)
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	stamp := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Stamped", "yes")
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	api := r.Group("/api", stamp)
	api.Get("/orders", "orders.list", ok("list"))
	r.Get("/healthz", "healthz", ok("ok"))

	rec := get(t, r.Handler(), http.MethodGet, "/api/orders")
	if rec.Header().Get("X-Stamped") != "yes" {
		t.Error("group middleware did not run")
	}

	rec = get(t, r.Handler(), http.MethodGet, "/healthz")
	if rec.Header().Get("X-Stamped") != "" {
		t.Error("group middleware leaked outside the group")
	}
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/orders/{id}", "orders.show", ok("one"))

	path, found := r.Path("orders.show")
	if !found {
		t.Fatal("named route not registered")
	}
	if path != "/api/orders/{id}" {
		t.Errorf("unexpected path: %s", path)
	}

	url, err := r.URL("orders.show", map[string]string{"id": "42"})
	if err != nil {
		t.Fatalf("URL failed: %v", err)
	}
	if url != "/api/orders/42" {
		t.Errorf("unexpected url: %s", url)
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok("a"))
	r.Post("/b", "b", ok("b"))

	infos := r.Routes()
	if len(infos) != 2 {
		t.Errorf("expected 2 named routes, got %d", len(infos))
	}
}
