package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"launchquote/internal/pkg/logger"
)

// AdminTokenAuth protects the admin endpoints using a static bearer token.
func AdminTokenAuth(token string, lggr logger.Logger) gin.HandlerFunc {
	lggr = lggr.Named("admin_auth")
	expected := []byte(token)

	return func(c *gin.Context) {
		if len(expected) == 0 {
			logAuthFailure(lggr, c, http.StatusInternalServerError, "token_not_configured")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Admin token is not configured", "code": "INTERNAL_ERROR"})
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(lggr, c, http.StatusUnauthorized, "missing_auth")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required", "code": "AUTH_MISSING"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logAuthFailure(lggr, c, http.StatusUnauthorized, "invalid_auth_format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be 'Bearer <token>'", "code": "AUTH_INVALID"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), expected) != 1 {
			logAuthFailure(lggr, c, http.StatusForbidden, "invalid_token")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid admin token", "code": "AUTH_INVALID"})
			return
		}

		c.Next()
	}
}

func logAuthFailure(lggr logger.Logger, c *gin.Context, status int, reason string) {
	lggr.Warnw("Admin auth rejected", "status", status, "request_id", requestID(c), "reason", reason, "client_ip", c.ClientIP())
}
