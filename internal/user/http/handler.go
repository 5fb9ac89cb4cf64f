package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/file"
	"github.com/sportspot/booking-backend/internal/pkg/request"
	"github.com/sportspot/booking-backend/internal/pkg/response"
	"github.com/sportspot/booking-backend/internal/user"
)

type Handler struct {
	service     user.Service
	fileService file.Service
	jwtManager  *auth.JWTManager
}

func NewHandler(service user.Service, fileService file.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:     service,
		fileService: fileService,
		jwtManager:  jwtManager,
	}
}

//
// POST /api/auth/register
//

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.FullName, auth.Role(req.Role))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "account created",
		"user":    NewUserResponse(u),
	})
}

//
// POST /api/auth/login
//

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	u, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(u.ID, u.Email, u.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         NewUserResponse(u),
	})
}

//
// POST /api/auth/refresh
//

// Refresh exchanges a valid refresh token for a new token pair. The account
// is re-checked so a locked user cannot keep refreshing.
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	claims, err := h.jwtManager.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !u.IsActive {
		response.Error(c, user.ErrInactiveUser)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(u.ID, u.Email, u.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{
		Token:        token,
		RefreshToken: refreshToken,
	})
}

//
// POST /api/auth/forgot
//

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Token delivery is a mail concern outside this service; log it so
	// operators can relay it manually in environments without a mailer.
	if token != "" {
		zap.L().Info("password reset token issued", zap.String("email", req.Email))
	}

	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset link has been sent"})
}

//
// POST /api/auth/reset
//

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password has been reset"})
}

//
// GET /api/users/profile
//

func (h *Handler) GetProfile(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

//
// PUT /api/users/profile
//

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), auth.GetUserID(c), user.UpdateProfileRequest{
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewUserResponse(u))
}

//
// PUT /api/users/change-password
//

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), auth.GetUserID(c), req.OldPassword, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

//
// POST /api/upload/avatar
//

func (h *Handler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}

	userID := auth.GetUserID(c)

	f, err := h.fileService.Upload(c.Request.Context(), fileHeader, userID, file.KindAvatar)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.SetAvatar(c.Request.Context(), userID, f.ID); err != nil {
		// Roll back the orphaned upload if the profile update fails.
		_ = h.fileService.Delete(c.Request.Context(), f.ID)
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": file.URL(f.ID)})
}

//
// GET /api/admin/users
//

func (h *Handler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := user.Filter{
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	users, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

//
// PUT /api/admin/users/:id/active
//

func (h *Handler) SetActive(c *gin.Context) {
	var uri request.ByUUIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body SetActiveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetActive(c.Request.Context(), uri.ID, body.IsActive); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
