package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"fast-generic-api/config"
	itemHTTP "fast-generic-api/internal/item/delivery/http"
	"fast-generic-api/internal/item/repository"
	itemMemory "fast-generic-api/internal/item/repository/memory"
	itemPostgre "fast-generic-api/internal/item/repository/postgre"
	itemRedis "fast-generic-api/internal/item/repository/redis"
	itemUC "fast-generic-api/internal/item/usecase"
	"fast-generic-api/internal/middleware"
)

// setupItemDomain initializes the item domain and registers its routes.
//
// Pattern to follow when adding a new domain:
//  1. Create Repository:   repo := mydomainRepo.New(srv.postgresDB, srv.l)
//  2. Create UseCase:      uc := mydomainUC.New(repo, srv.l)
//  3. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  4. Register Routes:     mydomainHTTP.RegisterRoutes(api, h, mw)
func (srv HTTPServer) setupItemDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	// 1. Repository
	repo := srv.newItemRepository()

	// 2. UseCase
	uc := itemUC.New(repo, srv.l)

	// 3. HTTP Handler
	h := itemHTTP.New(srv.l, uc)

	// 4. Routes: registers /api/v1/items
	itemHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Item domain registered (storage: %s)", srv.storageDriver)
	return nil
}

func (srv HTTPServer) newItemRepository() repository.Repository {
	switch srv.storageDriver {
	case config.StoragePostgres:
		return itemPostgre.New(srv.postgresDB, srv.l)
	case config.StorageRedis:
		return itemRedis.New(srv.redisClient, srv.l)
	default:
		return itemMemory.New()
	}
}
