package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers auth, profile and admin user-management routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware, rateLimiter gin.HandlerFunc) {
	// === Public Auth Routes (rate limited) ===
	authGroup := g.Group("/auth")
	authGroup.Use(rateLimiter)
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/forgot", h.ForgotPassword)
		authGroup.POST("/reset", h.ResetPassword)
	}

	// === Authenticated Routes ===
	users := g.Group("/users")
	users.Use(authMiddleware)
	{
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
		users.PUT("/change-password", h.ChangePassword)
	}

	upload := g.Group("/upload")
	upload.Use(authMiddleware)
	{
		upload.POST("/avatar", h.UploadAvatar)
	}

	// === Admin Routes ===
	admin := g.Group("/admin/users")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("", h.List)
		admin.PUT("/:id/active", h.SetActive)
	}
}
