package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fast-generic-api/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "Item API is up"
	HealthVersion = "1.0.0"
	ServiceName   = "fast-generic-api"
)

const readyTimeout = 2 * time.Second

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready once the storage backend answers a ping.
// @Summary Readiness Check
// @Description Check if the API and its storage are ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} response.Resp "Storage unavailable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	if err := srv.pingStorage(ctx); err != nil {
		srv.l.Warnf(ctx, "httpserver.readyCheck: %s not ready: %v", srv.storageDriver, err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Resp{
			ErrorCode: http.StatusServiceUnavailable,
			Message:   "storage unavailable",
		})
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"storage": srv.storageDriver,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

func (srv HTTPServer) pingStorage(ctx context.Context) error {
	if srv.postgresDB != nil {
		if err := srv.postgresDB.PingContext(ctx); err != nil {
			return err
		}
	}
	if srv.redisClient != nil {
		if err := srv.redisClient.Ping(ctx).Err(); err != nil {
			return err
		}
	}
	return nil
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}
