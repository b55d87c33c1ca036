package mail

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"launchquote/internal/middleware"
)

// RegisterRoutes registers public email routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.Any("/send-confirmation", middleware.AllowMethods(http.MethodPost), handler.SendConfirmation)
	r.POST("/email", handler.SendQuote)
}
