package agent

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the login endpoint outside the auth middleware.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes mounts endpoints that need an authenticated agent.
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/auth/me", h.Me)
}
