package http

import (
	"time"

	"github.com/sportspot/booking-backend/internal/booking"
)

type AvailabilityRequest struct {
	CourtID int    `form:"court_id" binding:"required,min=1"`
	Date    string `form:"date" binding:"required,datetime=2006-01-02"`
}

type CreateBookingRequest struct {
	SubCourtID    int    `json:"sub_court_id" binding:"required,min=1"`
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	SlotIDs       []int  `json:"slot_ids" binding:"required,min=1,dive,min=1"`
	PaymentMethod string `json:"payment_method" binding:"required,oneof=cash transfer"`
}

type MultiBookingRequest struct {
	Date          string             `json:"date" binding:"required,datetime=2006-01-02"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=cash transfer"`
	Selections    []SelectionRequest `json:"selections" binding:"required,min=1,dive"`
}

type SelectionRequest struct {
	SubCourtID int   `json:"sub_court_id" binding:"required,min=1"`
	SlotIDs    []int `json:"slot_ids" binding:"required,min=1,dive,min=1"`
}

type ListBookingsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=pending deposited paid cancelled"`
	CourtID  int    `form:"court_id" binding:"omitempty,min=1"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

type SlotAvailabilityResponse struct {
	ID        int    `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Price     int64  `json:"price"`
	IsTaken   bool   `json:"is_taken"`
}

type SubCourtAvailabilityResponse struct {
	ID       int                        `json:"id"`
	Name     string                     `json:"name"`
	BaseRate int64                      `json:"base_rate"`
	Slots    []SlotAvailabilityResponse `json:"available_slots"`
}

type AvailabilityResponse struct {
	CourtID   int                            `json:"court_id"`
	CourtName string                         `json:"court_name"`
	Date      string                         `json:"date"`
	Holiday   *string                        `json:"holiday,omitempty"`
	SubCourts []SubCourtAvailabilityResponse `json:"sub_courts"`
}

func NewAvailabilityResponse(a *booking.AvailabilityResult) AvailabilityResponse {
	resp := AvailabilityResponse{
		CourtID:   a.Court.ID,
		CourtName: a.Court.Name,
		Date:      a.Date.Format(time.DateOnly),
		SubCourts: make([]SubCourtAvailabilityResponse, len(a.SubCourts)),
	}
	if a.Holiday != nil {
		resp.Holiday = &a.Holiday.Name
	}
	for i, sc := range a.SubCourts {
		sub := SubCourtAvailabilityResponse{
			ID:       sc.SubCourt.ID,
			Name:     sc.SubCourt.Name,
			BaseRate: sc.SubCourt.BaseRate,
			Slots:    make([]SlotAvailabilityResponse, len(sc.Slots)),
		}
		for j, sa := range sc.Slots {
			sub.Slots[j] = SlotAvailabilityResponse{
				ID:        sa.Slot.ID,
				StartTime: sa.Slot.StartTime,
				EndTime:   sa.Slot.EndTime,
				Price:     sa.Price,
				IsTaken:   sa.IsTaken,
			}
		}
		resp.SubCourts[i] = sub
	}
	return resp
}

type BookingDetailResponse struct {
	SlotID    int    `json:"slot_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Price     int64  `json:"price"`
}

type BookingResponse struct {
	ID            int                     `json:"id"`
	UserID        string                  `json:"user_id"`
	CourtID       int                     `json:"court_id"`
	CourtName     string                  `json:"court_name"`
	SubCourtID    int                     `json:"sub_court_id"`
	SubCourtName  string                  `json:"sub_court_name"`
	Date          string                  `json:"date"`
	Status        string                  `json:"status"`
	PaymentMethod string                  `json:"payment_method"`
	TotalPrice    int64                   `json:"total_price"`
	CreatedAt     time.Time               `json:"created_at"`
	Details       []BookingDetailResponse `json:"details"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		CourtID:       b.CourtID,
		CourtName:     b.CourtName,
		SubCourtID:    b.SubCourtID,
		SubCourtName:  b.SubCourtName,
		Date:          b.Date.Format(time.DateOnly),
		Status:        string(b.Status),
		PaymentMethod: string(b.PaymentMethod),
		TotalPrice:    b.TotalPrice,
		CreatedAt:     b.CreatedAt,
		Details:       make([]BookingDetailResponse, len(b.Details)),
	}
	for i, d := range b.Details {
		resp.Details[i] = BookingDetailResponse{
			SlotID:    d.SlotID,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			Price:     d.Price,
		}
	}
	return resp
}

type StatsResponse struct {
	Total     int   `json:"total"`
	Pending   int   `json:"pending"`
	Deposited int   `json:"deposited"`
	Paid      int   `json:"paid"`
	Cancelled int   `json:"cancelled"`
	Revenue   int64 `json:"revenue"`
}

func NewStatsResponse(s *booking.Stats) StatsResponse {
	return StatsResponse{
		Total:     s.Total,
		Pending:   s.Pending,
		Deposited: s.Deposited,
		Paid:      s.Paid,
		Cancelled: s.Cancelled,
		Revenue:   s.Revenue,
	}
}

type MultiBookingResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalPrice int64             `json:"total_price"`
}
