// Package main is the entry point for the fee calculator API.
// It loads configuration, connects PostgreSQL and Redis, wires the
// services and starts the HTTP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"estatefees/internal/catalog"
	"estatefees/internal/config"
	"estatefees/internal/handlers"
	applog "estatefees/internal/logger"
	"estatefees/internal/repositories"
	"estatefees/internal/repositories/cache"
	"estatefees/internal/routes"
	"estatefees/internal/services/calculation"
	"estatefees/internal/services/feeregistry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()
	applog.Init(config.GetEnv("LOG_LEVEL", "info"), config.IsProduction())
	log := applog.L

	cat, err := loadCatalog()
	if err != nil {
		log.WithError(err).Fatal("failed to load fee catalog")
	}
	if err := cat.Validate(); err != nil {
		log.WithError(err).Fatal("fee catalog is inconsistent")
	}
	log.WithField("categories", cat.Len()).Info("fee catalog loaded")

	db, err := repositories.OpenDB(repositories.DSNFromEnv(), repositories.DBConfigFromEnv())
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer repositories.CloseDB(db)

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})
	cacheTTL := config.GetDurationEnv("CALC_CACHE_TTL", calculation.DefaultCacheTTL)
	cacheService := cache.NewCacheService(redisClient, cacheTTL)
	defer func() {
		if err := cacheService.Close(); err != nil {
			log.WithError(err).Warn("failed to close Redis connection")
		}
	}()

	// Quotes cached by a previous process may come from another catalog
	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := cacheService.DeleteMatching(startupCtx, calculation.CachePattern); err != nil {
		log.WithError(err).Warn("failed to clear cached quotes")
	}
	cancel()

	feeRepo := repositories.NewAssetFeeRepository(db)
	calculationService := calculation.NewService(cat, cacheService, cacheTTL)
	feeManager := feeregistry.NewManager(feeRepo.ForAsset, feeRepo)

	app := fiber.New(fiber.Config{
		AppName:      "estatefees",
		ReadTimeout:  config.GetDurationEnv("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: config.GetDurationEnv("HTTP_WRITE_TIMEOUT", 10*time.Second),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(config.GetListEnv("CORS_ORIGINS", []string{"http://localhost:5173"}), ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	mutationLimiter := limiter.New(limiter.Config{
		Max:        config.GetIntEnv("FEE_MUTATION_RATE_LIMIT", 30),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})

	routes.SetupRoutes(app, routes.Handlers{
		Health: handlers.NewHealthHandler(map[string]handlers.HealthCheck{
			"database": func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": cacheService.HealthCheck,
		}, map[string]handlers.StatsFunc{
			"redis_pool": func() interface{} { return cacheService.GetStats() },
		}),
		Catalog:   handlers.NewCatalogHandler(calculationService),
		AssetFees: handlers.NewAssetFeeHandler(feeManager),
	}, mutationLimiter)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Warn("server shutdown failed")
		}
	}()

	addr := ":" + config.GetEnv("PORT", "3000")
	log.WithField("addr", addr).Info("starting server")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Error("server stopped")
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	if path := config.GetEnv("CATALOG_PATH", ""); path != "" {
		return catalog.LoadFile(path)
	}
	return catalog.Default()
}
