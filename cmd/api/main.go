package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dishpatch/dishpatch-backend/api/routes"
	cartsvc "github.com/dishpatch/dishpatch-backend/internal/cart"
	"github.com/dishpatch/dishpatch-backend/internal/catalog"
	"github.com/dishpatch/dishpatch-backend/internal/notifications"
	"github.com/dishpatch/dishpatch-backend/internal/settings"
	"github.com/dishpatch/dishpatch-backend/pkg/config"
	"github.com/dishpatch/dishpatch-backend/pkg/logger"
	"github.com/dishpatch/dishpatch-backend/pkg/metrics"
	"github.com/dishpatch/dishpatch-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var dishes catalog.Provider
	if cfg.Catalog.SeedPath != "" {
		provider, err := catalog.NewMemoryProviderFromSeed(cfg.Catalog.SeedPath)
		if err != nil {
			logg.Error(context.Background(), "failed to load dish catalog", err)
			os.Exit(1)
		}
		dishes = provider
	} else {
		dishes = catalog.NewMemoryProvider(nil)
		logg.Warn(context.Background(), "no catalog seed configured, starting with an empty catalog")
	}

	registry := prometheus.NewRegistry()

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store:   cartsvc.NewRedisStore(redisClient, cfg.Cart.SessionTTL),
		Dishes:  dishes,
		Pricing: settings.NewService(cfg.Cart, nil),
		Sink:    notifications.NewLogSink(logg),
		Logger:  logg,
		Metrics: metrics.NewCartMetrics(registry),
		MaxQty:  cfg.Cart.MaxQuantityPerLineItem,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, cartService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
