package client

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	clients := r.Group("/clients")
	{
		clients.POST("", h.Create)
		clients.GET("", h.ListMine)
		clients.GET("/:id", h.Get)
		clients.DELETE("/:id", h.Delete)
	}
}
