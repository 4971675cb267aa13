package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"fast-generic-api/pkg/response"
)

const bearerPrefix = "Bearer "

// Auth enforces API-key authentication via Bearer tokens.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(m.apiKeys) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.Header("WWW-Authenticate", `Bearer realm="fast-generic-api"`)
			response.Unauthorized(c)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if _, ok := m.apiKeys[token]; !ok {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: rejected token for %s", c.Request.URL.Path)
			c.Header("WWW-Authenticate", `Bearer realm="fast-generic-api", error="invalid_token"`)
			response.Unauthorized(c)
			return
		}

		c.Next()
	}
}
