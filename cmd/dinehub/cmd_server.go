package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/dinehub/app/controllers"
	"github.com/shashiranjanraj/dinehub/app/events"
	"github.com/shashiranjanraj/dinehub/app/repositories"
	"github.com/shashiranjanraj/dinehub/app/routes"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/internal/server"
	"github.com/shashiranjanraj/dinehub/pkg/router"
	"github.com/shashiranjanraj/dinehub/pkg/ws"
)

// dinehub serve starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// dinehub route:list prints all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := router.New()
		if err := registerForListing(r); err != nil {
			return err
		}

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		// Sort by path then method.
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}

// registerForListing wires the route table without connecting to Mongo or
// Redis. Repositories only open collections per request, so constructing
// them here is safe.
func registerForListing(r *router.Router) error {
	orderRepo := repositories.NewOrderRepository()
	menuRepo := repositories.NewMenuRepository()
	mealPlanRepo := repositories.NewMealPlanRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	userRepo := repositories.NewUserRepository()

	hub := ws.NewHub()
	orderService := services.NewOrderService(orderRepo, events.NewHubPublisher(hub))
	stockService := services.NewStockService(menuRepo, inventoryRepo, false)

	graphqlController, err := controllers.NewGraphQLController(menuRepo, mealPlanRepo, orderService)
	if err != nil {
		return err
	}

	routes.RegisterAPI(r, routes.Controllers{
		Auth:      controllers.NewAuthController(services.NewAuthService(userRepo)),
		Orders:    controllers.NewOrderController(orderService),
		Inventory: controllers.NewInventoryController(inventoryRepo, stockService),
		Catalog:   controllers.NewCatalogController(menuRepo, mealPlanRepo),
		GraphQL:   graphqlController,
		WS:        controllers.NewWSController(hub),
	})
	return nil
}
