package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// CreateAll inserts every booking with its details in a single
	// transaction. If any requested slot is already taken the whole batch is
	// rolled back and ErrConflict is returned carrying the conflicted slots.
	CreateAll(ctx context.Context, bookings []*Booking) error

	GetByID(ctx context.Context, id int) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id int, status Status) error

	// TakenSlots returns, per sub-court of the given court, the slot ids
	// already booked (any non-cancelled booking) for the date.
	TakenSlots(ctx context.Context, courtID int, date time.Time) (map[int][]int, error)

	// Stats aggregates bookings, restricted to one owner's courts when
	// ownerID is non-empty.
	Stats(ctx context.Context, ownerID string) (*Stats, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const takenBySubCourtQuery = `
	SELECT b.sub_court_id, bd.slot_id
	FROM public.bookings b
	JOIN public.booking_details bd ON bd.booking_id = b.id
	JOIN public.sub_courts sc ON sc.id = b.sub_court_id
	WHERE sc.court_id = $1 AND b.date = $2 AND b.status <> 'cancelled'
`

func (r *pgxRepository) TakenSlots(ctx context.Context, courtID int, date time.Time) (map[int][]int, error) {
	rows, err := r.pool.Query(ctx, takenBySubCourtQuery, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("query taken slots failed: %w", err)
	}
	defer rows.Close()

	taken := make(map[int][]int)
	for rows.Next() {
		var subCourtID, slotID int
		if err := rows.Scan(&subCourtID, &slotID); err != nil {
			return nil, fmt.Errorf("scan taken slot failed: %w", err)
		}
		taken[subCourtID] = append(taken[subCourtID], slotID)
	}
	return taken, nil
}

const lockSubCourtsQuery = `
	SELECT id FROM public.sub_courts WHERE id = ANY($1) ORDER BY id FOR UPDATE
`

const takenForSubCourtsQuery = `
	SELECT b.sub_court_id, bd.slot_id
	FROM public.bookings b
	JOIN public.booking_details bd ON bd.booking_id = b.id
	WHERE b.sub_court_id = ANY($1) AND b.date = $2 AND b.status <> 'cancelled'
`

func (r *pgxRepository) CreateAll(ctx context.Context, bookings []*Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction failed: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	subCourtIDs := make([]int, 0, len(bookings))
	for _, b := range bookings {
		subCourtIDs = append(subCourtIDs, b.SubCourtID)
	}

	// Lock the sub-court rows to serialize concurrent checkouts touching the
	// same surfaces, then re-check every requested slot inside the lock.
	if _, err := tx.Exec(ctx, lockSubCourtsQuery, subCourtIDs); err != nil {
		return fmt.Errorf("lock sub-courts failed: %w", err)
	}

	date := bookings[0].Date
	rows, err := tx.Query(ctx, takenForSubCourtsQuery, subCourtIDs, date)
	if err != nil {
		return fmt.Errorf("query taken slots failed: %w", err)
	}
	taken := make(map[ConflictedSlot]bool)
	for rows.Next() {
		var c ConflictedSlot
		if err := rows.Scan(&c.SubCourtID, &c.SlotID); err != nil {
			rows.Close()
			return fmt.Errorf("scan taken slot failed: %w", err)
		}
		taken[c] = true
	}
	rows.Close()

	var conflicts []ConflictedSlot
	for _, b := range bookings {
		for _, d := range b.Details {
			key := ConflictedSlot{SubCourtID: b.SubCourtID, SlotID: d.SlotID}
			if taken[key] {
				conflicts = append(conflicts, key)
			}
			// A slot claimed earlier in this batch is taken for the rest
			// of it.
			taken[key] = true
		}
	}
	if len(conflicts) > 0 {
		return ErrConflict.WithDetails(conflicts)
	}

	for _, b := range bookings {
		if err := r.insertBooking(ctx, tx, b); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bookings failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) insertBooking(ctx context.Context, tx pgx.Tx, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "sub_court_id", "date", "status", "payment_method", "total_price").
		Values(b.UserID, b.SubCourtID, b.Date, b.Status, b.PaymentMethod, b.TotalPrice).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	detailBuilder := psql.Insert("public.booking_details").
		Columns("booking_id", "slot_id", "price")
	for _, d := range b.Details {
		detailBuilder = detailBuilder.Values(b.ID, d.SlotID, d.Price)
	}
	query, args, err = detailBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("build create booking details query failed: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create booking details failed: %w", err)
	}
	for i := range b.Details {
		b.Details[i].BookingID = b.ID
	}
	return nil
}

const bookingColumns = `
	b.id, b.user_id, b.sub_court_id, sc.name, c.id, c.name,
	b.date, b.status, b.payment_method, b.total_price, b.created_at
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.SubCourtID, &b.SubCourtName, &b.CourtID, &b.CourtName,
		&b.Date, &b.Status, &b.PaymentMethod, &b.TotalPrice, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM public.bookings b
		JOIN public.sub_courts sc ON sc.id = b.sub_court_id
		JOIN public.courts c ON c.id = sc.court_id
		WHERE b.id = $1
	`
	b, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	if err := r.loadDetails(ctx, []*Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(
		"b.id", "b.user_id", "b.sub_court_id", "sc.name", "c.id", "c.name",
		"b.date", "b.status", "b.payment_method", "b.total_price", "b.created_at",
		"count(*) OVER() AS total_count",
	).
		From("public.bookings b").
		Join("public.sub_courts sc ON sc.id = b.sub_court_id").
		Join("public.courts c ON c.id = sc.court_id").
		OrderBy("b.created_at DESC")

	if filter.UserID != "" {
		builder = builder.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.OwnerID != "" {
		builder = builder.Where(squirrel.Eq{"c.owner_id": filter.OwnerID})
	}
	if filter.CourtID > 0 {
		builder = builder.Where(squirrel.Eq{"c.id": filter.CourtID})
	}
	if filter.SubCourtID > 0 {
		builder = builder.Where(squirrel.Eq{"b.sub_court_id": filter.SubCourtID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"b.date": *filter.Date})
	}
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		builder = builder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.SubCourtID, &b.SubCourtName, &b.CourtID, &b.CourtName,
			&b.Date, &b.Status, &b.PaymentMethod, &b.TotalPrice, &b.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	if err := r.loadDetails(ctx, bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

const detailsQuery = `
	SELECT bd.id, bd.booking_id, bd.slot_id,
		to_char(ts.start_time, 'HH24:MI:SS'), to_char(ts.end_time, 'HH24:MI:SS'),
		bd.price
	FROM public.booking_details bd
	JOIN public.time_slots ts ON ts.id = bd.slot_id
	WHERE bd.booking_id = ANY($1)
	ORDER BY ts.start_time ASC
`

func (r *pgxRepository) loadDetails(ctx context.Context, bookings []*Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]int, len(bookings))
	byID := make(map[int]*Booking, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	rows, err := r.pool.Query(ctx, detailsQuery, ids)
	if err != nil {
		return fmt.Errorf("load booking details failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.BookingID, &d.SlotID, &d.StartTime, &d.EndTime, &d.Price); err != nil {
			return fmt.Errorf("scan booking detail failed: %w", err)
		}
		b := byID[d.BookingID]
		b.Details = append(b.Details, d)
	}
	return nil
}

func (r *pgxRepository) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(
		"count(*)",
		"count(*) FILTER (WHERE b.status = 'pending')",
		"count(*) FILTER (WHERE b.status = 'deposited')",
		"count(*) FILTER (WHERE b.status = 'paid')",
		"count(*) FILTER (WHERE b.status = 'cancelled')",
		"coalesce(sum(b.total_price) FILTER (WHERE b.status = 'paid'), 0)",
	).
		From("public.bookings b").
		Join("public.sub_courts sc ON sc.id = b.sub_court_id").
		Join("public.courts c ON c.id = sc.court_id")

	if ownerID != "" {
		builder = builder.Where(squirrel.Eq{"c.owner_id": ownerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build booking stats query failed: %w", err)
	}

	var s Stats
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&s.Total, &s.Pending, &s.Deposited, &s.Paid, &s.Cancelled, &s.Revenue,
	)
	if err != nil {
		return nil, fmt.Errorf("booking stats failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id int, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
