package http

import (
	"fast-generic-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// All routes are protected by the Auth middleware.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	items := rg.Group("/items", mw.Auth())
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/:id", h.Detail)
		items.PUT("/:id", h.Update)
		items.PATCH("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
		items.POST("/:id/restore", h.Restore)
	}
}
