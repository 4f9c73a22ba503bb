// Package server wires the application together and runs the HTTP stack.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/dinehub/app/controllers"
	"github.com/shashiranjanraj/dinehub/app/events"
	"github.com/shashiranjanraj/dinehub/app/repositories"
	"github.com/shashiranjanraj/dinehub/app/routes"
	"github.com/shashiranjanraj/dinehub/app/services"
	"github.com/shashiranjanraj/dinehub/config"
	"github.com/shashiranjanraj/dinehub/pkg/cache"
	"github.com/shashiranjanraj/dinehub/pkg/database"
	"github.com/shashiranjanraj/dinehub/pkg/logger"
	"github.com/shashiranjanraj/dinehub/pkg/metrics"
	"github.com/shashiranjanraj/dinehub/pkg/middleware"
	"github.com/shashiranjanraj/dinehub/pkg/reqid"
	"github.com/shashiranjanraj/dinehub/pkg/router"
	"github.com/shashiranjanraj/dinehub/pkg/ws"
)

// Start boots the full stack and blocks until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if config.LogToMongo() {
		mh, err := logger.NewMongoHandler(config.MongoURI(), config.MongoDatabase(), "logs")
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			logger.SetHandler(logger.Fanout(logger.L.Handler(), mh))
			defer mh.Close()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.Connect(ctx); err != nil {
		return err
	}
	defer database.Disconnect(context.Background())

	if err := cache.Connect(); err != nil {
		// Cache is an optimization only; serve uncached when Redis is down.
		logger.Warn("redis unavailable, catalog caching disabled", "error", err)
	}

	hub := ws.NewHub()
	hub.OnCountChange = func(total int) {
		metrics.WSClients.Set(float64(total))
	}
	go hub.Run()

	handler, err := buildHandler(hub)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dinehub listening", "port", config.AppPort(), "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// buildHandler assembles repositories, services, controllers and routes.
func buildHandler(hub *ws.Hub) (http.Handler, error) {
	orderRepo := repositories.NewOrderRepository()
	menuRepo := repositories.NewMenuRepository()
	mealPlanRepo := repositories.NewMealPlanRepository()
	inventoryRepo := repositories.NewInventoryRepository()
	userRepo := repositories.NewUserRepository()

	publisher := events.NewHubPublisher(hub)
	orderService := services.NewOrderService(orderRepo, publisher)
	stockService := services.NewStockService(menuRepo, inventoryRepo, config.StockStrictCheck())
	authService := services.NewAuthService(userRepo)

	graphqlController, err := controllers.NewGraphQLController(menuRepo, mealPlanRepo, orderService)
	if err != nil {
		return nil, err
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	routes.RegisterAPI(r, routes.Controllers{
		Auth:      controllers.NewAuthController(authService),
		Orders:    controllers.NewOrderController(orderService),
		Inventory: controllers.NewInventoryController(inventoryRepo, stockService),
		Catalog:   controllers.NewCatalogController(menuRepo, mealPlanRepo),
		GraphQL:   graphqlController,
		WS:        controllers.NewWSController(hub),
	})

	return r.Handler(), nil
}
