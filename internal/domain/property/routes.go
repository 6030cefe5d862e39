package property

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	properties := r.Group("/properties")
	{
		properties.POST("", h.Create)
		properties.GET("", h.ListMine)
		properties.GET("/:id", h.Get)
		properties.DELETE("/:id", h.Delete)
	}
}
