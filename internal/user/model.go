package user

import (
	"net/http"
	"time"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "account is locked")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrWrongPassword      = apperror.New(http.StatusBadRequest, "current password is incorrect")
	ErrInvalidResetToken  = apperror.New(http.StatusBadRequest, "invalid or expired reset token")
)

// User represents an account: customer, court owner or administrator.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FullName     *string
	Phone        *string
	Address      *string
	AvatarFileID *string
	Role         auth.Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// PasswordReset is a single-use token letting a user set a new password.
type PasswordReset struct {
	Token     string // UUID
	UserID    string
	ExpiresAt time.Time
	Used      bool
}

// Filter defines filter options for the admin user listing.
type Filter struct {
	Email    string
	Role     string
	IsActive *bool // pointer distinguishes false from not-set

	Page     int
	PageSize int
}
