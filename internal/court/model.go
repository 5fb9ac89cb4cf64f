package court

import (
	"net/http"
	"time"

	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "court not found")
	ErrSubCourtNotFound = apperror.New(http.StatusNotFound, "sub-court not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidSport     = apperror.New(http.StatusBadRequest, "invalid sport_id")
	ErrInvalidHours     = apperror.New(http.StatusBadRequest, "open time must be before close time")
	ErrInvalidRate      = apperror.New(http.StatusBadRequest, "base rate must not be negative")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrHasBookings      = apperror.New(http.StatusConflict, "sub-court still has bookings")
)

// SubCourtStatus tracks whether a playing surface is bookable.
type SubCourtStatus string

const (
	SubCourtActive      SubCourtStatus = "active"
	SubCourtMaintenance SubCourtStatus = "maintenance"
)

// Court is a facility: a venue with an address, opening hours and one or
// more individually bookable sub-courts.
type Court struct {
	ID          int
	OwnerID     string
	SportID     int
	SportName   string
	Name        string
	Address     string
	Description string
	OpenTime    string // "HH:MM:SS"
	CloseTime   string // "HH:MM:SS"
	ImageFileID *string
	CreatedAt   time.Time

	SubCourts []*SubCourt // populated on detail queries
}

// SubCourt is an individually bookable playing surface within a court.
type SubCourt struct {
	ID          int
	CourtID     int
	Name        string
	BaseRate    int64 // hourly rate in VND
	Description string
	Status      SubCourtStatus
	CreatedAt   time.Time
}

// Filter defines parameters for browsing and searching courts.
type Filter struct {
	SportID int
	Query   string // free-text match on name/description
	Address string
	OwnerID string
	Page    int
	PageSize int
}
