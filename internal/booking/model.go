package booking

import (
	"net/http"
	"time"

	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "booking not found")
	ErrSubCourtGone    = apperror.New(http.StatusNotFound, "sub-court not found")
	ErrSlotUnknown     = apperror.New(http.StatusBadRequest, "unknown time slot")
	ErrPastDate        = apperror.New(http.StatusBadRequest, "booking date is in the past")
	ErrOutsideHours    = apperror.New(http.StatusBadRequest, "time slot is outside the court's opening hours")
	ErrNoSlots         = apperror.New(http.StatusBadRequest, "no time slots requested")
	ErrConflict        = apperror.New(http.StatusConflict, "one or more time slots are already booked")
	ErrDuplicateSlot   = apperror.New(http.StatusBadRequest, "a time slot is requested more than once")
	ErrForbidden       = apperror.New(http.StatusForbidden, "not allowed to access this booking")
	ErrNotCancellable  = apperror.New(http.StatusConflict, "booking can no longer be cancelled")
	ErrNotDepositable  = apperror.New(http.StatusConflict, "booking is not awaiting a deposit")
	ErrClosedSubCourt  = apperror.New(http.StatusConflict, "sub-court is under maintenance")
	ErrInvalidPayment  = apperror.New(http.StatusBadRequest, "invalid payment method")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDeposited Status = "deposited"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	return m == PaymentCash || m == PaymentTransfer
}

// Booking is one reservation of a single sub-court for one date, covering
// one or more time slots. Prices are in VND.
type Booking struct {
	ID            int
	UserID        string
	SubCourtID    int
	SubCourtName  string
	CourtID       int
	CourtName     string
	Date          time.Time
	Status        Status
	PaymentMethod PaymentMethod
	TotalPrice    int64
	CreatedAt     time.Time

	Details []BookingDetail
}

// BookingDetail is one booked slot within a booking, with the price frozen
// at booking time.
type BookingDetail struct {
	ID        int
	BookingID int
	SlotID    int
	StartTime string
	EndTime   string
	Price     int64
}

// ConflictedSlot identifies a requested slot that is already taken. A 409
// response carries the full list so the client can refresh its selection.
type ConflictedSlot struct {
	SubCourtID int `json:"sub_court_id"`
	SlotID     int `json:"slot_id"`
}

// Stats aggregates bookings for the owner and admin dashboards. Revenue
// counts paid bookings only.
type Stats struct {
	Total     int
	Pending   int
	Deposited int
	Paid      int
	Cancelled int
	Revenue   int64
}

// Filter narrows booking listings.
type Filter struct {
	UserID     string
	OwnerID    string
	CourtID    int
	SubCourtID int
	Status     Status
	Date       *time.Time
	Page       int
	PageSize   int
}
