package httpserver

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"fast-generic-api/config"
	"fast-generic-api/pkg/log"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Storage
	storageDriver string
	postgresDB    *sql.DB
	redisClient   *goredis.Client

	// API protection
	apiKeys         []string
	rateLimitPerMin int
	registry        *prometheus.Registry
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration

	// Storage: StorageDriver picks which client backs the item repository.
	StorageDriver string
	PostgresDB    *sql.DB
	RedisClient   *goredis.Client

	APIKeys         []string
	RateLimitPerMin int
	MetricsEnabled  bool
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		storageDriver:   cfg.StorageDriver,
		postgresDB:      cfg.PostgresDB,
		redisClient:     cfg.RedisClient,
		apiKeys:         cfg.APIKeys,
		rateLimitPerMin: cfg.RateLimitPerMin,
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = defaultShutdownTimeout
	}
	if cfg.MetricsEnabled {
		srv.registry = prometheus.NewRegistry()
		srv.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	switch srv.storageDriver {
	case config.StorageMemory:
	case config.StoragePostgres:
		if srv.postgresDB == nil {
			return errors.New("postgres connection is required for the postgres driver")
		}
	case config.StorageRedis:
		if srv.redisClient == nil {
			return errors.New("redis client is required for the redis driver")
		}
	default:
		return errors.New("unsupported storage driver: " + srv.storageDriver)
	}
	return nil
}
