package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateProfile(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, filter Filter) ([]*User, int, error)

	CreatePasswordReset(ctx context.Context, pr *PasswordReset) error
	GetPasswordReset(ctx context.Context, token string) (*PasswordReset, error)
	MarkResetUsed(ctx context.Context, token string) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{
		pool: pool,
	}
}

const userColumns = `
	u.id,
	u.email,
	u.password_hash,
	u.full_name,
	u.phone,
	u.address,
	u.avatar_file_id,
	u.role,
	u.is_active,
	u.created_at,
	u.last_login_at
`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Phone,
		&u.Address,
		&u.AvatarFileID,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.LastLoginAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM public.users u WHERE u.email = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByEmail query failed: %w", err)
	}
	return u, nil
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM public.users u WHERE u.id = $1`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByID query failed: %w", err)
	}
	return u, nil
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (email, password_hash, full_name, phone, address, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.Phone,
		u.Address,
		u.Role,
		u.IsActive,
	).Scan(&u.ID, &u.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("Create user failed: %w", err)
	}

	return nil
}

func (r *pgxUserRepository) UpdateProfile(ctx context.Context, u *User) error {
	const query = `
		UPDATE public.users
		SET full_name = $1, phone = $2, address = $3, avatar_file_id = $4
		WHERE id = $5
	`

	ct, err := r.pool.Exec(ctx, query, u.FullName, u.Phone, u.Address, u.AvatarFileID, u.ID)
	if err != nil {
		return fmt.Errorf("UpdateProfile failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE public.users SET password_hash = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("UpdatePassword failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	const query = `UPDATE public.users SET last_login_at = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, t, id)
	if err != nil {
		return fmt.Errorf("UpdateLastLogin failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE public.users SET is_active = $1 WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("SetActive failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxUserRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var args []any
	var sb strings.Builder
	sb.WriteString(`SELECT ` + userColumns + `, count(*) OVER() AS total_count FROM public.users u WHERE 1=1`)

	// Dynamic filtering
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		sb.WriteString(" AND u.email ILIKE $" + strconv.Itoa(len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		sb.WriteString(" AND u.role = $" + strconv.Itoa(len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		sb.WriteString(" AND u.is_active = $" + strconv.Itoa(len(args)))
	}

	sb.WriteString(" ORDER BY u.created_at DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	args = append(args, filter.PageSize)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("List users query failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	var total int

	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.PasswordHash,
			&u.FullName,
			&u.Phone,
			&u.Address,
			&u.AvatarFileID,
			&u.Role,
			&u.IsActive,
			&u.CreatedAt,
			&u.LastLoginAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, &u)
	}

	return users, total, nil
}

func (r *pgxUserRepository) CreatePasswordReset(ctx context.Context, pr *PasswordReset) error {
	const query = `
		INSERT INTO public.password_resets (token, user_id, expires_at, used)
		VALUES ($1, $2, $3, false)
	`

	if _, err := r.pool.Exec(ctx, query, pr.Token, pr.UserID, pr.ExpiresAt); err != nil {
		return fmt.Errorf("CreatePasswordReset failed: %w", err)
	}
	return nil
}

func (r *pgxUserRepository) GetPasswordReset(ctx context.Context, token string) (*PasswordReset, error) {
	const query = `
		SELECT token, user_id, expires_at, used
		FROM public.password_resets
		WHERE token = $1
	`

	var pr PasswordReset
	if err := r.pool.QueryRow(ctx, query, token).Scan(&pr.Token, &pr.UserID, &pr.ExpiresAt, &pr.Used); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidResetToken
		}
		return nil, fmt.Errorf("GetPasswordReset failed: %w", err)
	}
	return &pr, nil
}

func (r *pgxUserRepository) MarkResetUsed(ctx context.Context, token string) error {
	const query = `UPDATE public.password_resets SET used = true WHERE token = $1`

	ct, err := r.pool.Exec(ctx, query, token)
	if err != nil {
		return fmt.Errorf("MarkResetUsed failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrInvalidResetToken
	}
	return nil
}
