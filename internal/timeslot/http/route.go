package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers time slot, holiday and week surcharge routes.
// The pricing configuration is public to read; mutation is admin-only.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	configs := g.Group("/configs")

	configs.GET("/time-slots", h.ListSlots)
	configs.GET("/holidays", h.ListHolidays)
	configs.GET("/week-surcharges", h.ListWeekSurcharges)

	admin := configs.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/time-slots", h.CreateSlot)
		admin.PUT("/time-slots/:id", h.UpdateSlot)
		admin.DELETE("/time-slots/:id", h.DeleteSlot)
		admin.POST("/holidays", h.CreateHoliday)
		admin.DELETE("/holidays/:id", h.DeleteHoliday)
		admin.POST("/week-surcharges", h.CreateWeekSurcharge)
		admin.PUT("/week-surcharges/:id", h.UpdateWeekSurcharge)
		admin.DELETE("/week-surcharges/:id", h.DeleteWeekSurcharge)
	}
}
