package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court browsing and owner management routes.
// Browsing is public; mutation requires the owner (or admin) role, with
// per-court ownership enforced in the service layer.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")

	group.GET("", h.List)
	group.GET("/search", h.List)
	group.GET("/by-sport/:sportID", h.ListBySport)
	group.GET("/:id", h.Get)
	group.GET("/:id/sub-courts", h.ListSubCourts)

	manage := group.Group("")
	manage.Use(authMiddleware, ownerMiddleware)
	{
		manage.POST("", h.Create)
		manage.PUT("/:id", h.Update)
		manage.DELETE("/:id", h.Delete)
		manage.POST("/:id/images", h.UploadImage)
		manage.POST("/:id/sub-courts", h.CreateSubCourt)
	}

	subCourts := g.Group("/sub-courts")
	subCourts.Use(authMiddleware, ownerMiddleware)
	{
		subCourts.PUT("/:id", h.UpdateSubCourt)
		subCourts.DELETE("/:id", h.DeleteSubCourt)
	}

	owner := g.Group("/owner/courts")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.GET("", h.ListMine)
	}
}
