package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportspot/booking-backend/internal/auth"
)

type memoryRepo struct {
	users  map[string]*User
	resets map[string]*PasswordReset
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		users:  make(map[string]*User),
		resets: make(map[string]*PasswordReset),
	}
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailAlreadyUsed
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	r.users[u.ID] = u
	return nil
}

func (r *memoryRepo) UpdateProfile(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *memoryRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memoryRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &t
	return nil
}

func (r *memoryRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = active
	return nil
}

func (r *memoryRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (r *memoryRepo) CreatePasswordReset(_ context.Context, pr *PasswordReset) error {
	r.resets[pr.Token] = pr
	return nil
}

func (r *memoryRepo) GetPasswordReset(_ context.Context, token string) (*PasswordReset, error) {
	pr, ok := r.resets[token]
	if !ok {
		return nil, ErrInvalidResetToken
	}
	return pr, nil
}

func (r *memoryRepo) MarkResetUsed(_ context.Context, token string) error {
	pr, ok := r.resets[token]
	if !ok {
		return ErrInvalidResetToken
	}
	pr.Used = true
	return nil
}

// Low bcrypt cost keeps the tests fast.
func newTestService() (Service, *memoryRepo) {
	repo := newMemoryRepo()
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	return NewService(repo, hasher, 30*time.Minute), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "  Customer@Example.COM ", "password123", "Nguyen Van A", "")
	require.NoError(t, err)
	assert.Equal(t, "customer@example.com", u.Email, "email is normalized")
	assert.Equal(t, auth.RoleCustomer, u.Role, "default role")
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "password123", u.PasswordHash)

	logged, err := svc.Login(ctx, "customer@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotNil(t, logged.LastLoginAt)

	_, err = svc.Login(ctx, "customer@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "password123", "", auth.RoleOwner)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "A@Example.com", "password456", "", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), "a@example.com", "short", "", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "password123", "", "")
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, u.ID, false))

	_, err = svc.Login(ctx, "a@example.com", "password123")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "password123", "", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, "wrong", "newpassword1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(ctx, u.ID, "password123", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "password123", "newpassword1"))

	_, err = svc.Login(ctx, "a@example.com", "newpassword1")
	assert.NoError(t, err)
}

func TestForgotAndResetPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "password123", "", "")
	require.NoError(t, err)

	token, err := svc.ForgotPassword(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(ctx, token, "freshpassword"))

	_, err = svc.Login(ctx, "a@example.com", "freshpassword")
	assert.NoError(t, err)

	// Tokens are single use.
	err = svc.ResetPassword(ctx, token, "anotherpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestForgotPasswordHidesUnknownEmails(t *testing.T) {
	svc, _ := newTestService()

	token, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.NoError(t, err, "unknown emails must not be probeable")
	assert.Empty(t, token)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@example.com", "password123", "", "")
	require.NoError(t, err)

	token, err := svc.ForgotPassword(ctx, "a@example.com")
	require.NoError(t, err)

	repo.resets[token].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	err = svc.ResetPassword(ctx, token, "freshpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "a@example.com", "password123", "Nguyen Van A", "")
	require.NoError(t, err)

	phone := "0901234567"
	updated, err := svc.UpdateProfile(ctx, u.ID, UpdateProfileRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, &phone, updated.Phone)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Nguyen Van A", *updated.FullName, "unset fields stay unchanged")
}
