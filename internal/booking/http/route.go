package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Availability is public so guests
// can browse the slot grid; everything else requires a signed-in user.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, ownerMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.GET("/available", h.Availability)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.POST("/multi", h.CreateMulti)
		authed.GET("/my-history", h.History)
		authed.GET("/:id", h.Get)
		authed.GET("/:id/qr", h.CheckInQR)
		authed.POST("/:id/cancel", h.Cancel)
	}

	owner := g.Group("/owner/bookings")
	owner.Use(authMiddleware, ownerMiddleware)
	{
		owner.GET("", h.OwnerOrders)
		owner.POST("/:id/deposit", h.RecordDeposit)
	}

	ownerStats := g.Group("/owner/stats")
	ownerStats.Use(authMiddleware, ownerMiddleware)
	{
		ownerStats.GET("/overview", h.OwnerStats)
	}

	admin := g.Group("/admin/bookings")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.ListAll)
	}

	adminStats := g.Group("/admin/stats")
	adminStats.Use(authMiddleware, adminMiddleware)
	{
		adminStats.GET("/overview", h.AdminStats)
	}
}
