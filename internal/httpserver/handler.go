package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fast-generic-api/internal/middleware"
	"fast-generic-api/internal/model"
)

func (srv HTTPServer) mapHandlers() error {
	mw := srv.newMiddleware()

	srv.registerMiddlewares(mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(mw); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) newMiddleware() middleware.Middleware {
	cfg := middleware.Config{
		APIKeys:         srv.apiKeys,
		RateLimitPerMin: srv.rateLimitPerMin,
	}
	// A nil *Registry must not become a non-nil Registerer.
	if srv.registry != nil {
		cfg.Registerer = srv.registry
	}
	return middleware.New(srv.l, cfg)
}

func (srv HTTPServer) registerMiddlewares(mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID(), mw.AccessLog(), mw.Metrics(), mw.RateLimit())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Server mode: production")
	} else {
		srv.l.Infof(ctx, "Server mode: %s", srv.environment)
	}
	if len(srv.apiKeys) == 0 {
		srv.l.Warnf(ctx, "No API keys configured, item routes are unauthenticated")
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	if srv.registry != nil {
		srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})))
	}

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv HTTPServer) registerDomainRoutes(mw middleware.Middleware) error {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1")

	if err := srv.setupItemDomain(ctx, api, mw); err != nil {
		return err
	}

	return nil
}
