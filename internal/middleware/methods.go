package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowMethods rejects any other method with 405 and an Allow header.
func AllowMethods(methods ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(methods))
	for _, m := range methods {
		allowed[m] = true
	}
	allowHeader := strings.Join(methods, ", ")

	return func(c *gin.Context) {
		if !allowed[c.Request.Method] {
			c.Header("Allow", allowHeader)
			c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{
				"error": "Method " + c.Request.Method + " Not Allowed",
				"code":  "METHOD_NOT_ALLOWED",
			})
			return
		}
		c.Next()
	}
}
