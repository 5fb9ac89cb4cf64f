package http

import (
	"time"

	"github.com/sportspot/booking-backend/internal/file"
	"github.com/sportspot/booking-backend/internal/pkg/request"
	"github.com/sportspot/booking-backend/internal/user"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
	// Self-registration covers customers and court owners. Admin accounts
	// are provisioned out of band.
	Role string `json:"role" binding:"omitempty,oneof=customer owner"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required,uuid"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ListUsersRequest defines query parameters for the admin user listing.
type ListUsersRequest struct {
	request.ListParams
	Email    string `form:"email"`
	Role     string `form:"role" binding:"omitempty,oneof=customer owner admin"`
	IsActive *bool  `form:"is_active"`
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    *string    `json:"full_name"`
	Phone       *string    `json:"phone"`
	Address     *string    `json:"address"`
	AvatarURL   *string    `json:"avatar_url"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func NewUserResponse(u *user.User) UserResponse {
	var avatarURL *string
	if u.AvatarFileID != nil {
		url := file.URL(*u.AvatarFileID)
		avatarURL = &url
	}

	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Address:     u.Address,
		AvatarURL:   avatarURL,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}
