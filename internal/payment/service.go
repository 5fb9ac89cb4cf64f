package payment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/booking"
	"github.com/sportspot/booking-backend/internal/payment/vnpay"
)

type Service interface {
	// CreatePaymentURL opens a payment attempt for the booking and returns
	// the gateway redirect URL. A deposit charges DepositPercent of the
	// total on a pending booking; a full payment charges the whole total,
	// or the remainder when a deposit was already settled.
	CreatePaymentURL(ctx context.Context, bookingID int, userID string, actorRole auth.Role, kind Kind, clientIP string) (string, error)

	// HandleCallback settles the payment referenced by a verified gateway
	// callback and marks the booking paid on success. It is idempotent:
	// replaying a settled callback returns the stored payment unchanged.
	HandleCallback(ctx context.Context, values url.Values) (*Payment, error)

	ListByBooking(ctx context.Context, bookingID int, userID string, actorRole auth.Role) ([]*Payment, error)
}

type service struct {
	repo           Repository
	gateway        *vnpay.Client
	bookingService booking.Service
}

func NewService(repo Repository, gateway *vnpay.Client, bookingService booking.Service) Service {
	return &service{
		repo:           repo,
		gateway:        gateway,
		bookingService: bookingService,
	}
}

func (s *service) CreatePaymentURL(ctx context.Context, bookingID int, userID string, actorRole auth.Role, kind Kind, clientIP string) (string, error) {
	if !ValidKind(kind) {
		return "", ErrInvalidKind
	}

	b, err := s.bookingService.GetByID(ctx, bookingID, userID, actorRole)
	if err != nil {
		return "", err
	}
	if b.Status == booking.StatusPaid || b.Status == booking.StatusCancelled {
		return "", ErrNotPayable
	}

	amount, err := chargeAmount(b, kind)
	if err != nil {
		return "", err
	}

	p := &Payment{
		BookingID: b.ID,
		UserID:    userID,
		Kind:      kind,
		TxnRef:    uuid.NewString(),
		Amount:    amount,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return "", err
	}

	paymentURL := s.gateway.BuildPaymentURL(vnpay.PaymentRequest{
		TxnRef:    p.TxnRef,
		Amount:    p.Amount,
		OrderInfo: fmt.Sprintf("Booking #%d %s", b.ID, b.SubCourtName),
		ClientIP:  clientIP,
	})

	zap.L().Info("payment url created",
		zap.Int("booking_id", b.ID),
		zap.String("txn_ref", p.TxnRef),
		zap.String("kind", string(p.Kind)),
		zap.Int64("amount", p.Amount),
	)
	return paymentURL, nil
}

// chargeAmount resolves what a payment of the given kind owes on the
// booking. Deposits round down; the closing full payment carries the
// remainder so the two always sum to the total.
func chargeAmount(b *booking.Booking, kind Kind) (int64, error) {
	deposit := b.TotalPrice * DepositPercent / 100

	switch kind {
	case KindDeposit:
		if b.Status != booking.StatusPending {
			return 0, ErrDepositNotOpen
		}
		return deposit, nil
	case KindFull:
		if b.Status == booking.StatusDeposited {
			return b.TotalPrice - deposit, nil
		}
		return b.TotalPrice, nil
	}
	return 0, ErrInvalidKind
}

func (s *service) HandleCallback(ctx context.Context, values url.Values) (*Payment, error) {
	result, err := s.gateway.VerifyCallback(values)
	if err != nil {
		return nil, ErrInvalidSignature.WithDetails(err.Error())
	}

	p, err := s.repo.GetByTxnRef(ctx, result.TxnRef)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPending {
		return p, nil
	}
	if result.Amount != p.Amount {
		return nil, ErrAmountMismatch
	}

	p.TransactionNo = result.TransactionNo
	p.BankCode = result.BankCode
	if result.Success() {
		now := time.Now()
		p.Status = StatusSuccess
		p.PaidAt = &now
	} else {
		p.Status = StatusFailed
	}

	if err := s.repo.Settle(ctx, p); err != nil {
		if errors.Is(err, ErrAlreadySettled) {
			return s.repo.GetByTxnRef(ctx, result.TxnRef)
		}
		return nil, err
	}

	if p.Status == StatusSuccess {
		transition := s.bookingService.MarkPaid
		if p.Kind == KindDeposit {
			transition = s.bookingService.MarkDeposited
		}
		if err := transition(ctx, p.BookingID); err != nil {
			zap.L().Error("update booking after payment failed",
				zap.Int("booking_id", p.BookingID),
				zap.String("kind", string(p.Kind)),
				zap.Error(err),
			)
			return nil, err
		}
	}

	zap.L().Info("payment settled",
		zap.String("txn_ref", p.TxnRef),
		zap.String("status", string(p.Status)),
		zap.String("response_code", result.ResponseCode),
	)
	return p, nil
}

func (s *service) ListByBooking(ctx context.Context, bookingID int, userID string, actorRole auth.Role) ([]*Payment, error) {
	// Access control rides on the booking lookup.
	if _, err := s.bookingService.GetByID(ctx, bookingID, userID, actorRole); err != nil {
		return nil, err
	}
	return s.repo.ListByBooking(ctx, bookingID)
}
