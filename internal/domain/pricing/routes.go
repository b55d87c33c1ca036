package pricing

import "github.com/gin-gonic/gin"

// RegisterRoutes registers public pricing routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	r.GET("/pricing", handler.GetCatalog)
	r.POST("/pricing/quote", handler.Quote)
}
