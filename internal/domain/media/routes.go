package media

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the media endpoints on the protected group. Owner
// scoped routes hang off the property/client path segments; asset scoped
// routes live under /media.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	properties := r.Group("/properties/:id/media")
	{
		properties.POST("", h.UploadForProperty)
		properties.GET("", h.ListForProperty)
		properties.GET("/primary", h.GetPrimaryForProperty)
		properties.PUT("/order", h.ReorderForProperty)
	}

	clients := r.Group("/clients/:id/media")
	{
		clients.POST("", h.UploadForClient)
		clients.GET("", h.ListForClient)
		clients.GET("/primary", h.GetPrimaryForClient)
		clients.PUT("/order", h.ReorderForClient)
	}

	assets := r.Group("/media")
	{
		assets.GET("/:id", h.GetOriginal)
		assets.GET("/:id/thumbnail", h.GetThumbnail)
		assets.PUT("/:id", h.UpdateMeta)
		assets.PUT("/:id/primary", h.SetPrimary)
		assets.DELETE("/:id", h.Delete)
	}

	r.GET("/ws/media", h.Watch)
}
