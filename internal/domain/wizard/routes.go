package wizard

import "github.com/gin-gonic/gin"

// RegisterRoutes registers wizard session routes
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	sessions := r.Group("/wizard/sessions")
	{
		sessions.POST("", handler.CreateSession)
		sessions.GET("/:id", handler.GetSession)
		sessions.PATCH("/:id/fields", handler.UpdateFields)
		sessions.POST("/:id/addons/:addonId", handler.ToggleAddOn)
		sessions.POST("/:id/actions/:action", handler.Dispatch)
		sessions.GET("/:id/slots", handler.Slots)
	}
}
