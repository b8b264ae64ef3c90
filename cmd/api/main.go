package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ghost-kitchen/internal/core/auth"
	"ghost-kitchen/internal/core/cache"
	"ghost-kitchen/internal/core/config"
	"ghost-kitchen/internal/core/logger"
	"ghost-kitchen/internal/core/realtime"
	"ghost-kitchen/internal/core/server"
	menuadapter "ghost-kitchen/internal/features/menu/adapters"
	menuhandler "ghost-kitchen/internal/features/menu/handler"
	menuservice "ghost-kitchen/internal/features/menu/service"
	orderadapter "ghost-kitchen/internal/features/orders/adapters"
	orderhandler "ghost-kitchen/internal/features/orders/handler"
	orderservice "ghost-kitchen/internal/features/orders/service"
	trackinghandler "ghost-kitchen/internal/features/tracking/handler"
	trackingservice "ghost-kitchen/internal/features/tracking/service"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// @title Ghost Kitchen API
// @version 1.0
// @description Order intake, kitchen status tracking and menu management for a ghost kitchen.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /api/v1
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

	// Order store connection and health check
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		l.Fatal("Invalid Redis URL", zap.Error(err))
	}
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	cancelPing()
	l.Info("Redis connection verified")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Orders
	orderRepo := orderadapter.NewRedisOrderRepository(redisClient)
	catalog := orderadapter.NewRedisProductCatalog(redisClient)
	codes := orderservice.NewCodeGenerator(orderRepo, cfg.Orders.CodeLength, cfg.Orders.CodeMaxAttempts)
	locker := orderadapter.NewLockerGateway(cfg.LockerBridgeURL)

	// Realtime notifications plus the tracking watcher as fan-out targets
	hub := realtime.NewHub()
	watcher := trackingservice.NewWatcher(orderRepo, cfg.Tracking.PollInterval())
	go watcher.Run(ctx)

	events := orderadapter.NewFanoutPublisher(orderadapter.NewHubPublisher(hub), watcher)

	orderService := orderservice.NewOrderService(orderRepo, catalog, codes, events, locker)
	orderHandler := orderhandler.NewOrderHandler(orderService)

	// Tracking
	trackingSvc := trackingservice.NewTrackingService(orderRepo, cfg.Tracking.PrepWindow(), cfg.Tracking.ReadyWindow())
	trackingHdl := trackinghandler.NewTrackingHandler(trackingSvc, watcher)

	// Menu
	menuCache, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to init menu store", zap.Error(err))
	}
	defer menuCache.Close()

	menuRepo := menuadapter.NewRedisProductRepository(menuCache)
	menuService := menuservice.NewMenuService(menuRepo)
	menuHandler := menuhandler.NewMenuHandler(menuService)

	srv := server.New(cfg)

	// Register routes
	api := srv.App.Group("/api/v1", auth.Middleware())

	api.Post("/orders", orderHandler.CreateOrder)
	api.Get("/orders", auth.RequireRole(auth.RoleCook, auth.RoleAdmin), orderHandler.ListOrders)
	api.Get("/orders/history", auth.RequireAccount(), orderHandler.ListHistory)
	api.Get("/orders/code/:code", orderHandler.GetOrderByCode)
	api.Get("/orders/:id", auth.RequireAccount(), orderHandler.GetOrder)
	api.Patch("/orders/:id/status", auth.RequireRole(auth.RoleCook, auth.RoleAdmin), orderHandler.UpdateStatus)

	api.Get("/tracking/orders", trackingHdl.RecentOrders)
	api.Get("/tracking/:code", trackingHdl.TrackByCode)

	api.Get("/menu", menuHandler.ListProducts)
	api.Get("/menu/products/:id", menuHandler.GetProduct)
	api.Post("/menu/products", auth.RequireRole(auth.RoleAdmin), menuHandler.UpsertProduct)
	api.Patch("/menu/products/:id/availability", auth.RequireRole(auth.RoleAdmin), menuHandler.SetAvailability)
	api.Delete("/menu/products/:id", auth.RequireRole(auth.RoleAdmin), menuHandler.RemoveProduct)

	srv.App.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	srv.App.Get("/ws/orders", websocket.New(hub.Handler()))

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		l.Info("Shutdown signal received")
		cancel()
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
