package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/go-redis/redis/v8"

	"fast-generic-api/config"
	_ "fast-generic-api/docs" // Swagger docs
	"fast-generic-api/internal/httpserver"
	"fast-generic-api/pkg/log"
	"fast-generic-api/pkg/postgres"
	pkgRedis "fast-generic-api/pkg/redis"
)

// @title       Fast Generic API
// @description CRUD API for items with soft deletion.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey Bearer
// @in          header
// @name        Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Fast Generic API...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Storage driver: %s", cfg.Storage.Driver)

	// 3. Storage
	var (
		db          *sql.DB
		redisClient *goredis.Client
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err = postgres.Connect(ctx, postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			DBName:          cfg.Postgres.DBName,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
			return
		}
		defer db.Close()
		logger.Info(ctx, "PostgreSQL connected")

	case config.StorageRedis:
		redisClient, err = pkgRedis.Connect(ctx, pkgRedis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Error(ctx, "Failed to connect to Redis: ", err)
			return
		}
		defer redisClient.Close()
		logger.Info(ctx, "Redis connected")

	default:
		logger.Warn(ctx, "Using in-memory storage, data is lost on restart")
	}

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		StorageDriver:   cfg.Storage.Driver,
		PostgresDB:      db,
		RedisClient:     redisClient,
		APIKeys:         cfg.Auth.APIKeys,
		RateLimitPerMin: cfg.RateLimit.RequestsPerMin,
		MetricsEnabled:  cfg.Metrics.Enabled,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
