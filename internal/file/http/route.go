package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file serving routes. Files are public once
// uploaded: court photos and avatars are rendered on unauthenticated pages.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/files")

	group.GET("/:id", h.ServeFile)
	group.GET("/:id/thumbnail", h.ServeThumbnail)
}
