package timeslot

import (
	"net/http"
	"time"

	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "time slot not found")
	ErrHolidayNotFound  = apperror.New(http.StatusNotFound, "holiday not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrOverlap          = apperror.New(http.StatusConflict, "time slot overlaps an existing slot")
	ErrInvalidSurcharge = apperror.New(http.StatusBadRequest, "surcharge must not be negative")
	ErrDuplicateHoliday = apperror.New(http.StatusConflict, "holiday already exists for that date")
	ErrInUse            = apperror.New(http.StatusConflict, "time slot is referenced by bookings")

	ErrWeekSurchargeNotFound  = apperror.New(http.StatusNotFound, "week surcharge not found")
	ErrInvalidWeekday         = apperror.New(http.StatusBadRequest, "weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrDuplicateWeekSurcharge = apperror.New(http.StatusConflict, "a surcharge for that weekday already exists")
)

// TimeSlot is a fixed facility-wide interval of the day with an additive
// surcharge on top of a sub-court's base hourly rate. The schedule is shared
// by every court; availability is per sub-court and date.
type TimeSlot struct {
	ID        int
	StartTime string // "HH:MM:SS", zero padded
	EndTime   string // "HH:MM:SS"
	Surcharge int64  // VND
}

// Holiday marks a calendar date carrying an extra surcharge on every slot.
type Holiday struct {
	ID        int
	Date      time.Time // date only, midnight UTC
	Name      string
	Surcharge int64 // VND
}

// WeekSurcharge adds a flat amount to every slot on one weekday, typically
// raising weekend rates. At most one entry exists per weekday.
type WeekSurcharge struct {
	ID        int
	Weekday   time.Weekday
	Surcharge int64 // VND
}

// Overlaps reports whether two slots intersect. Zero-padded HH:MM:SS strings
// compare lexicographically in chronological order.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.StartTime < other.EndTime && s.EndTime > other.StartTime
}
