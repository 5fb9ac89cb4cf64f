package court

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id int) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, c *Court) error
	Delete(ctx context.Context, id int) error

	CreateSubCourt(ctx context.Context, sc *SubCourt) error
	GetSubCourtByID(ctx context.Context, id int) (*SubCourt, error)
	ListSubCourts(ctx context.Context, courtID int) ([]*SubCourt, error)
	UpdateSubCourt(ctx context.Context, sc *SubCourt) error
	DeleteSubCourt(ctx context.Context, id int) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courts").
		Columns("owner_id", "sport_id", "name", "address", "description", "open_time", "close_time", "image_file_id").
		Values(c.OwnerID, c.SportID, c.Name, c.Address, c.Description, c.OpenTime, c.CloseTime, c.ImageFileID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrInvalidSport
		}
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int) (*Court, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"c.id", "c.owner_id", "c.sport_id", "s.name", "c.name", "c.address", "c.description",
		"to_char(c.open_time, 'HH24:MI:SS')", "to_char(c.close_time, 'HH24:MI:SS')",
		"c.image_file_id", "c.created_at",
	).
		From("public.courts c").
		Join("public.sports s ON c.sport_id = s.id").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get court query failed: %w", err)
	}

	var c Court
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.OwnerID, &c.SportID, &c.SportName, &c.Name, &c.Address, &c.Description,
		&c.OpenTime, &c.CloseTime, &c.ImageFileID, &c.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}

	subCourts, err := r.ListSubCourts(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.SubCourts = subCourts

	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"c.id", "c.owner_id", "c.sport_id", "s.name", "c.name", "c.address", "c.description",
		"to_char(c.open_time, 'HH24:MI:SS')", "to_char(c.close_time, 'HH24:MI:SS')",
		"c.image_file_id", "c.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.courts c").
		Join("public.sports s ON c.sport_id = s.id")

	if filter.SportID > 0 {
		query = query.Where(squirrel.Eq{"c.sport_id": filter.SportID})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"c.owner_id": filter.OwnerID})
	}
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"c.name": like},
			squirrel.ILike{"c.description": like},
		})
	}
	if filter.Address != "" {
		query = query.Where(squirrel.ILike{"c.address": "%" + filter.Address + "%"})
	}

	query = query.OrderBy("c.created_at DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int

	for rows.Next() {
		var c Court
		if err := rows.Scan(
			&c.ID, &c.OwnerID, &c.SportID, &c.SportName, &c.Name, &c.Address, &c.Description,
			&c.OpenTime, &c.CloseTime, &c.ImageFileID, &c.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &c)
	}

	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courts").
		Set("sport_id", c.SportID).
		Set("name", c.Name).
		Set("address", c.Address).
		Set("description", c.Description).
		Set("open_time", c.OpenTime).
		Set("close_time", c.CloseTime).
		Set("image_file_id", c.ImageFileID).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasBookings
		}
		return fmt.Errorf("delete court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateSubCourt(ctx context.Context, sc *SubCourt) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.sub_courts").
		Columns("court_id", "name", "base_rate", "description", "status").
		Values(sc.CourtID, sc.Name, sc.BaseRate, sc.Description, sc.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create sub-court query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&sc.ID, &sc.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("create sub-court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetSubCourtByID(ctx context.Context, id int) (*SubCourt, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "court_id", "name", "base_rate", "description", "status", "created_at").
		From("public.sub_courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get sub-court query failed: %w", err)
	}

	var sc SubCourt
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&sc.ID, &sc.CourtID, &sc.Name, &sc.BaseRate, &sc.Description, &sc.Status, &sc.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubCourtNotFound
		}
		return nil, fmt.Errorf("get sub-court failed: %w", err)
	}
	return &sc, nil
}

func (r *pgxRepository) ListSubCourts(ctx context.Context, courtID int) ([]*SubCourt, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "court_id", "name", "base_rate", "description", "status", "created_at").
		From("public.sub_courts").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sub-courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sub-courts failed: %w", err)
	}
	defer rows.Close()

	var subCourts []*SubCourt
	for rows.Next() {
		var sc SubCourt
		if err := rows.Scan(&sc.ID, &sc.CourtID, &sc.Name, &sc.BaseRate, &sc.Description, &sc.Status, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sub-court failed: %w", err)
		}
		subCourts = append(subCourts, &sc)
	}

	return subCourts, nil
}

func (r *pgxRepository) UpdateSubCourt(ctx context.Context, sc *SubCourt) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.sub_courts").
		Set("name", sc.Name).
		Set("base_rate", sc.BaseRate).
		Set("description", sc.Description).
		Set("status", sc.Status).
		Where(squirrel.Eq{"id": sc.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update sub-court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update sub-court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSubCourtNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteSubCourt(ctx context.Context, id int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.sub_courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete sub-court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrHasBookings
		}
		return fmt.Errorf("delete sub-court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSubCourtNotFound
	}
	return nil
}
