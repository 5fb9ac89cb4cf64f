package sport

import (
	"net/http"
	"time"

	"github.com/sportspot/booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.New(http.StatusNotFound, "sport not found")
	ErrEmptyName = apperror.New(http.StatusBadRequest, "sport name cannot be empty")
	ErrInUse     = apperror.New(http.StatusConflict, "sport still has courts attached")
)

// Sport is a bookable sport category (badminton, futsal, tennis, ...).
type Sport struct {
	ID          int
	Name        string
	Description string
	Icon        string
	CreatedAt   time.Time
}
