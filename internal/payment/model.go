package payment

import (
	"net/http"
	"time"

	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "payment not found")
	ErrAlreadySettled   = apperror.New(http.StatusConflict, "payment already settled")
	ErrInvalidSignature = apperror.New(http.StatusBadRequest, "invalid payment signature")
	ErrAmountMismatch   = apperror.New(http.StatusBadRequest, "payment amount mismatch")
	ErrNotPayable       = apperror.New(http.StatusConflict, "booking is not payable")
	ErrInvalidKind      = apperror.New(http.StatusBadRequest, "invalid payment kind")
	ErrDepositNotOpen   = apperror.New(http.StatusConflict, "booking already has a deposit or payment")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Kind is the portion of the booking total a payment covers. A deposit
// secures the reservation; the rest is settled later.
type Kind string

const (
	KindDeposit Kind = "deposit"
	KindFull    Kind = "full"
)

func ValidKind(k Kind) bool {
	return k == KindDeposit || k == KindFull
}

// DepositPercent is the share of the booking total a deposit covers.
const DepositPercent = 30

// Payment is one online payment attempt for a booking. TxnRef is the
// merchant reference sent to the gateway and echoed back on callbacks.
type Payment struct {
	ID            int
	BookingID     int
	UserID        string
	Kind          Kind
	TxnRef        string
	Amount        int64
	Status        Status
	TransactionNo string
	BankCode      string
	PaidAt        *time.Time
	CreatedAt     time.Time
}
