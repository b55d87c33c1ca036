package lead

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"launchquote/internal/middleware"
)

// RegisterPublicRoutes registers public lead routes
func RegisterPublicRoutes(r *gin.RouterGroup, handler *Handler) {
	r.Any("/submit", middleware.AllowMethods(http.MethodPost), handler.SubmitLead)
}

// RegisterAdminRoutes registers admin lead routes
func RegisterAdminRoutes(r *gin.RouterGroup, handler *Handler) {
	leads := r.Group("/leads")
	{
		leads.GET("", handler.ListLeads)
		leads.GET("/stats", handler.GetStats)
		leads.GET("/:id", handler.GetLead)
	}
}
