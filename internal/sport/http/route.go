package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers sport category routes. Reading is public;
// mutation is admin-only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/sports")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Delete)
	}
}
