package main

import (
	"context"
	"log"
	"time"

	"dispatch-engine/internal/core/cache"
	"dispatch-engine/internal/core/config"
	"dispatch-engine/internal/core/logger"
	"dispatch-engine/internal/core/server"
	catalogadapter "dispatch-engine/internal/features/catalog/adapters"
	orderadapter "dispatch-engine/internal/features/orders/adapters"
	orderhandler "dispatch-engine/internal/features/orders/handler"
	orderservice "dispatch-engine/internal/features/orders/service"
	routeadapter "dispatch-engine/internal/features/routes/adapters"
	routedomain "dispatch-engine/internal/features/routes/domain"
	routehandler "dispatch-engine/internal/features/routes/handler"
	routeservice "dispatch-engine/internal/features/routes/service"
	warehouseadapter "dispatch-engine/internal/features/warehouses/adapters"
	warehousedomain "dispatch-engine/internal/features/warehouses/domain"
	warehousehandler "dispatch-engine/internal/features/warehouses/handler"
	warehouseservice "dispatch-engine/internal/features/warehouses/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// @title Dispatch Engine API
// @version 1.0
// @description Logistics assignment and route lifecycle engine: order intake, warehouse capacity, optimized dispatch and delivery tracking.
// @contact.name API Support
// @contact.email soporte@dispatch-engine.co
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()

	// Initialize the Redis store and verify connectivity
	store, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis store", zap.Error(err))
	}
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Repositories
	warehouseRepo := warehouseadapter.NewRedisWarehouseRepository(store)
	orderRepo := orderadapter.NewRedisOrderRepository(store)
	truckRepo := routeadapter.NewRedisTruckRepository(store)
	routeRepo := routeadapter.NewRedisRouteRepository(store)

	// Seed the warehouse registry and fleet on first start
	warehouses, err := warehouseRepo.List(ctx)
	if err != nil {
		l.Fatal("Failed to read warehouse registry", zap.Error(err))
	}
	if len(warehouses) == 0 {
		warehouses = warehousedomain.DefaultWarehouses()
		for i := range warehouses {
			if err := warehouseRepo.Save(ctx, &warehouses[i]); err != nil {
				l.Fatal("Failed to seed warehouse", zap.Error(err))
			}
		}
		for _, truck := range routedomain.DefaultTrucks() {
			tr := truck
			if err := truckRepo.Save(ctx, &tr); err != nil {
				l.Fatal("Failed to seed truck", zap.Error(err))
			}
		}
		l.Info("Seeded warehouse registry and fleet",
			zap.Int("bodegas", len(warehouses)),
		)
	}

	// Catalog provider with read-through cache and health check
	catalogAdapter := catalogadapter.NewHTTPCatalogAdapter(cfg.Catalog)
	if err := catalogAdapter.HealthCheck(ctx); err != nil {
		l.Warn("Catalog health check failed, intake will use default volumes", zap.Error(err))
	}
	catalog := catalogadapter.NewCachedCatalogAdapter(
		catalogAdapter,
		store,
		time.Duration(cfg.Catalog.CacheTTLMinutes)*time.Minute,
	)

	// Intake pipeline
	resolver := warehouseservice.NewResolver(warehouses, cfg.Dispatch.DefaultCity)
	priority := orderservice.NewRandomPriorityPolicy(cfg.Dispatch.CriticalRatio, time.Now().UnixNano())
	intake := orderservice.NewIntakeService(orderRepo, catalog, resolver, priority)

	// Dispatch pipeline
	optimizer := routeadapter.NewHTTPOptimizerAdapter(cfg.Optimizer)
	broker := routeservice.NewBroker(optimizer, cfg.Optimizer.MaxRetries)
	lifecycle := routeservice.NewLifecycle(
		routeRepo,
		orderRepo,
		truckRepo,
		time.Duration(cfg.Dispatch.BufferMinutes)*time.Minute,
		time.Duration(cfg.Dispatch.ServiceTimeMinutes)*time.Minute,
	)
	dispatcher := routeservice.NewDispatcher(warehouseRepo, orderRepo, truckRepo, broker, lifecycle)

	// Handlers
	orderHdl := orderhandler.NewOrderHandler(intake, orderRepo)
	warehouseHdl := warehousehandler.NewWarehouseHandler(warehouseRepo, orderRepo)
	routeHdl := routehandler.NewRouteHandler(dispatcher, lifecycle, truckRepo)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/health", func(c *fiber.Ctx) error {
		if err := store.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	srv.App.Post("/pedidos", orderHdl.CreateOrder)
	srv.App.Get("/pedidos/:id", orderHdl.GetOrder)

	srv.App.Get("/bodegas", warehouseHdl.ListWarehouses)
	srv.App.Get("/bodegas/:nombre/pedidos", orderHdl.ListWarehouseOrders)
	srv.App.Get("/bodegas/:nombre/capacidad", warehouseHdl.GetCapacity)
	srv.App.Post("/bodegas/:nombre/despachar", routeHdl.Dispatch)

	srv.App.Get("/rutas/:id", routeHdl.GetRoute)
	srv.App.Post("/rutas/:id/iniciar", routeHdl.StartRoute)
	srv.App.Post("/rutas/:id/pausar", routeHdl.PauseRoute)
	srv.App.Post("/rutas/:id/reanudar", routeHdl.ResumeRoute)
	srv.App.Post("/rutas/:id/finalizar", routeHdl.FinishRoute)
	srv.App.Post("/rutas/:id/pedidos/:pedidoId/entregado", routeHdl.MarkDelivered)
	srv.App.Post("/rutas/:id/pedidos/:pedidoId/fallido", routeHdl.MarkFailed)

	srv.App.Get("/camiones", routeHdl.ListTrucks)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
