package timeslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateSlot(ctx context.Context, s *TimeSlot) error
	GetSlotByID(ctx context.Context, id int) (*TimeSlot, error)
	ListSlots(ctx context.Context) ([]*TimeSlot, error)
	UpdateSlot(ctx context.Context, s *TimeSlot) error
	DeleteSlot(ctx context.Context, id int) error

	CreateHoliday(ctx context.Context, h *Holiday) error
	ListHolidays(ctx context.Context) ([]*Holiday, error)
	GetHolidayByDate(ctx context.Context, date time.Time) (*Holiday, error)
	DeleteHoliday(ctx context.Context, id int) error

	CreateWeekSurcharge(ctx context.Context, w *WeekSurcharge) error
	ListWeekSurcharges(ctx context.Context) ([]*WeekSurcharge, error)
	GetWeekSurchargeByWeekday(ctx context.Context, weekday time.Weekday) (*WeekSurcharge, error)
	UpdateWeekSurcharge(ctx context.Context, w *WeekSurcharge) error
	DeleteWeekSurcharge(ctx context.Context, id int) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) CreateSlot(ctx context.Context, s *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.time_slots").
		Columns("start_time", "end_time", "surcharge").
		Values(s.StartTime, s.EndTime, s.Surcharge).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create time slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID); err != nil {
		return fmt.Errorf("create time slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetSlotByID(ctx context.Context, id int) (*TimeSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "to_char(start_time, 'HH24:MI:SS')", "to_char(end_time, 'HH24:MI:SS')", "surcharge",
	).
		From("public.time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get time slot query failed: %w", err)
	}

	var s TimeSlot
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.StartTime, &s.EndTime, &s.Surcharge); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get time slot failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) ListSlots(ctx context.Context) ([]*TimeSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "to_char(start_time, 'HH24:MI:SS')", "to_char(end_time, 'HH24:MI:SS')", "surcharge",
	).
		From("public.time_slots").
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list time slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*TimeSlot
	for rows.Next() {
		var s TimeSlot
		if err := rows.Scan(&s.ID, &s.StartTime, &s.EndTime, &s.Surcharge); err != nil {
			return nil, fmt.Errorf("scan time slot failed: %w", err)
		}
		slots = append(slots, &s)
	}

	return slots, nil
}

func (r *pgxRepository) UpdateSlot(ctx context.Context, s *TimeSlot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.time_slots").
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("surcharge", s.Surcharge).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update time slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteSlot(ctx context.Context, id int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete time slot query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrInUse
		}
		return fmt.Errorf("delete time slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateHoliday(ctx context.Context, h *Holiday) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.holidays").
		Columns("date", "name", "surcharge").
		Values(h.Date, h.Name, h.Surcharge).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create holiday query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&h.ID); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateHoliday
		}
		return fmt.Errorf("create holiday failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListHolidays(ctx context.Context) ([]*Holiday, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "date", "name", "surcharge").
		From("public.holidays").
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list holidays query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list holidays failed: %w", err)
	}
	defer rows.Close()

	var holidays []*Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Surcharge); err != nil {
			return nil, fmt.Errorf("scan holiday failed: %w", err)
		}
		holidays = append(holidays, &h)
	}

	return holidays, nil
}

func (r *pgxRepository) GetHolidayByDate(ctx context.Context, date time.Time) (*Holiday, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "date", "name", "surcharge").
		From("public.holidays").
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get holiday query failed: %w", err)
	}

	var h Holiday
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&h.ID, &h.Date, &h.Name, &h.Surcharge); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHolidayNotFound
		}
		return nil, fmt.Errorf("get holiday failed: %w", err)
	}
	return &h, nil
}

func (r *pgxRepository) CreateWeekSurcharge(ctx context.Context, w *WeekSurcharge) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.week_surcharges").
		Columns("weekday", "surcharge").
		Values(int(w.Weekday), w.Surcharge).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create week surcharge query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&w.ID); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateWeekSurcharge
		}
		return fmt.Errorf("create week surcharge failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListWeekSurcharges(ctx context.Context) ([]*WeekSurcharge, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "weekday", "surcharge").
		From("public.week_surcharges").
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list week surcharges query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list week surcharges failed: %w", err)
	}
	defer rows.Close()

	var surcharges []*WeekSurcharge
	for rows.Next() {
		var w WeekSurcharge
		if err := rows.Scan(&w.ID, &w.Weekday, &w.Surcharge); err != nil {
			return nil, fmt.Errorf("scan week surcharge failed: %w", err)
		}
		surcharges = append(surcharges, &w)
	}

	return surcharges, nil
}

func (r *pgxRepository) GetWeekSurchargeByWeekday(ctx context.Context, weekday time.Weekday) (*WeekSurcharge, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "weekday", "surcharge").
		From("public.week_surcharges").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get week surcharge query failed: %w", err)
	}

	var w WeekSurcharge
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&w.ID, &w.Weekday, &w.Surcharge); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWeekSurchargeNotFound
		}
		return nil, fmt.Errorf("get week surcharge failed: %w", err)
	}
	return &w, nil
}

func (r *pgxRepository) UpdateWeekSurcharge(ctx context.Context, w *WeekSurcharge) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.week_surcharges").
		Set("surcharge", w.Surcharge).
		Where(squirrel.Eq{"id": w.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update week surcharge query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update week surcharge failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrWeekSurchargeNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteWeekSurcharge(ctx context.Context, id int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.week_surcharges").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete week surcharge query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete week surcharge failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrWeekSurchargeNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteHoliday(ctx context.Context, id int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.holidays").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete holiday query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete holiday failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrHolidayNotFound
	}
	return nil
}
