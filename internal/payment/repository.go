package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByTxnRef(ctx context.Context, txnRef string) (*Payment, error)
	ListByBooking(ctx context.Context, bookingID int) ([]*Payment, error)
	Settle(ctx context.Context, p *Payment) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Payment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.payments").
		Columns("booking_id", "user_id", "kind", "txn_ref", "amount", "status").
		Values(p.BookingID, p.UserID, p.Kind, p.TxnRef, p.Amount, p.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create payment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("create payment failed: %w", err)
	}
	return nil
}

const paymentColumns = `
	id, booking_id, user_id, kind, txn_ref, amount, status,
	coalesce(transaction_no, ''), coalesce(bank_code, ''), paid_at, created_at
`

func (r *pgxRepository) GetByTxnRef(ctx context.Context, txnRef string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM public.payments WHERE txn_ref = $1`

	var p Payment
	err := r.pool.QueryRow(ctx, query, txnRef).Scan(
		&p.ID, &p.BookingID, &p.UserID, &p.Kind, &p.TxnRef, &p.Amount, &p.Status,
		&p.TransactionNo, &p.BankCode, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListByBooking(ctx context.Context, bookingID int) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM public.payments WHERE booking_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list payments failed: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		var p Payment
		err := rows.Scan(
			&p.ID, &p.BookingID, &p.UserID, &p.Kind, &p.TxnRef, &p.Amount, &p.Status,
			&p.TransactionNo, &p.BankCode, &p.PaidAt, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment failed: %w", err)
		}
		payments = append(payments, &p)
	}
	return payments, nil
}

// Settle records the gateway outcome. Only a pending payment can be
// settled, so replayed callbacks are rejected.
func (r *pgxRepository) Settle(ctx context.Context, p *Payment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.payments").
		Set("status", p.Status).
		Set("transaction_no", p.TransactionNo).
		Set("bank_code", p.BankCode).
		Set("paid_at", p.PaidAt).
		Where(squirrel.Eq{"id": p.ID, "status": StatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build settle payment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("settle payment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrAlreadySettled
	}
	return nil
}
