package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers payment routes. The return and IPN callbacks are
// unauthenticated because the gateway calls them; their queries are
// signature-verified instead.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/payment/vnpay")

	group.GET("/return", h.Return)
	group.GET("/ipn", h.IPN)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("/create", h.Create)
		authed.GET("/booking/:id", h.ListByBooking)
	}
}
