package routes

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/dinehub/app/controllers"
	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/metrics"
	"github.com/shashiranjanraj/dinehub/pkg/middleware"
	"github.com/shashiranjanraj/dinehub/pkg/rbac"
	"github.com/shashiranjanraj/dinehub/pkg/response"
	"github.com/shashiranjanraj/dinehub/pkg/router"
)

// Controllers bundles everything RegisterAPI wires into the router.
type Controllers struct {
	Auth      *controllers.AuthController
	Orders    *controllers.OrderController
	Inventory *controllers.InventoryController
	Catalog   *controllers.CatalogController
	GraphQL   *controllers.GraphQLController
	WS        *controllers.WSController
}

var (
	anyStaff    = rbac.HasRole(string(models.RoleWaiter), string(models.RoleCounter), string(models.RoleKitchen))
	counterOnly = rbac.HasRole(string(models.RoleCounter))
)

// RegisterAPI mounts every route. Role gates here cover route access;
// per-edge transition authorization lives in the order service.
func RegisterAPI(r *router.Router, c Controllers) {
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	r.Get("/ws", "ws.connect", c.WS.Connect, middleware.Auth)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", "auth.login", c.Auth.Login, middleware.RateLimit(10, time.Minute))
	auth.Post("/logout", "auth.logout", c.Auth.Logout)
	auth.Get("/profile", "auth.profile", c.Auth.Profile, middleware.Auth)

	staff := api.Group("", middleware.Auth, anyStaff)

	staff.Get("/orders", "orders.list", c.Orders.List)
	staff.Post("/orders", "orders.create", c.Orders.Create)
	staff.Get("/orders/{id}", "orders.show", c.Orders.Get)
	staff.Patch("/orders/{id}/status", "orders.status", c.Orders.UpdateStatus)

	staff.Get("/menu", "menu.list", c.Catalog.ListMenu)
	staff.Get("/meal-plans", "meal_plans.list", c.Catalog.ListMealPlans)
	staff.Post("/graphql", "graphql.query", c.GraphQL.Query)
	staff.Post("/inventory/check", "inventory.check", c.Inventory.Check)

	counter := api.Group("", middleware.Auth, counterOnly)

	counter.Post("/menu", "menu.create", c.Catalog.CreateMenuItem)
	counter.Post("/meal-plans", "meal_plans.create", c.Catalog.CreateMealPlan)
	counter.Get("/inventory", "inventory.list", c.Inventory.List)
	counter.Post("/inventory", "inventory.create", c.Inventory.Create)
	counter.Patch("/inventory/{id}", "inventory.update", c.Inventory.Update)
	counter.Post("/inventory/{id}/adjust", "inventory.adjust", c.Inventory.Adjust)
}
