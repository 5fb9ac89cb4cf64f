package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportspot/booking-backend/internal/auth"
)

// UpdateProfileRequest carries optional profile fields; nil means unchanged.
type UpdateProfileRequest struct {
	FullName *string
	Phone    *string
	Address  *string
}

// Service defines business logic related to users and credentials.
type Service interface {
	Register(ctx context.Context, email, password, fullName string, role auth.Role) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error)
	SetAvatar(ctx context.Context, id, fileID string) error
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error

	// ForgotPassword issues a single-use reset token for the account, if it
	// exists. The token is returned for delivery (mailing is out of scope);
	// a missing account yields no error so the endpoint cannot be used to
	// probe registered emails.
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error

	// Admin operations.
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
	resetTokenTTL     time.Duration
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, resetTokenTTL time.Duration) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
		resetTokenTTL:     resetTokenTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, email, password, fullName string, role auth.Role) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}

	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if role == "" {
		role = auth.RoleCustomer
	}

	// Check if email is already used.
	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var fullNamePtr *string
	if strings.TrimSpace(fullName) != "" {
		n := strings.TrimSpace(fullName)
		fullNamePtr = &n
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		FullName:     fullNamePtr,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last_login_at (best effort; do not fail login if update fails).
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		zap.L().Warn("failed to update last login", zap.String("user_id", u.ID), zap.Error(err))
	}
	u.LastLoginAt = &now

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = req.FullName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Address != nil {
		u.Address = req.Address
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) SetAvatar(ctx context.Context, id, fileID string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.AvatarFileID = &fileID
	return s.repo.UpdateProfile(ctx, u)
}

func (s *service) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(u.PasswordHash, oldPassword); err != nil {
		return ErrWrongPassword
	}

	if len(newPassword) < s.minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Do not reveal whether the email exists.
			return "", nil
		}
		return "", err
	}

	pr := &PasswordReset{
		Token:     uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: time.Now().UTC().Add(s.resetTokenTTL),
	}

	if err := s.repo.CreatePasswordReset(ctx, pr); err != nil {
		return "", err
	}

	return pr.Token, nil
}

func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	pr, err := s.repo.GetPasswordReset(ctx, token)
	if err != nil {
		return err
	}

	if pr.Used || time.Now().UTC().After(pr.ExpiresAt) {
		return ErrInvalidResetToken
	}

	if len(newPassword) < s.minPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, pr.UserID, hash); err != nil {
		return err
	}

	return s.repo.MarkResetUsed(ctx, token)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
