package http

import (
	"time"

	"github.com/sportspot/booking-backend/internal/timeslot"
)

type CreateTimeSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Surcharge int64  `json:"surcharge" binding:"min=0"`
}

type UpdateTimeSlotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Surcharge int64  `json:"surcharge" binding:"min=0"`
}

type CreateHolidayRequest struct {
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Name      string `json:"name" binding:"required,max=128"`
	Surcharge int64  `json:"surcharge" binding:"min=0"`
}

type CreateWeekSurchargeRequest struct {
	// 0 is Sunday through 6 Saturday, matching time.Weekday.
	Weekday   *int  `json:"weekday" binding:"required,min=0,max=6"`
	Surcharge int64 `json:"surcharge" binding:"min=0"`
}

type UpdateWeekSurchargeRequest struct {
	Surcharge int64 `json:"surcharge" binding:"min=0"`
}

type WeekSurchargeResponse struct {
	ID        int    `json:"id"`
	Weekday   int    `json:"weekday"`
	Name      string `json:"name"`
	Surcharge int64  `json:"surcharge"`
}

func NewWeekSurchargeResponse(w *timeslot.WeekSurcharge) WeekSurchargeResponse {
	return WeekSurchargeResponse{
		ID:        w.ID,
		Weekday:   int(w.Weekday),
		Name:      w.Weekday.String(),
		Surcharge: w.Surcharge,
	}
}

type TimeSlotResponse struct {
	ID        int    `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Surcharge int64  `json:"surcharge"`
}

func NewTimeSlotResponse(s *timeslot.TimeSlot) TimeSlotResponse {
	return TimeSlotResponse{
		ID:        s.ID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Surcharge: s.Surcharge,
	}
}

type HolidayResponse struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	Name      string `json:"name"`
	Surcharge int64  `json:"surcharge"`
}

func NewHolidayResponse(h *timeslot.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        h.ID,
		Date:      h.Date.Format(time.DateOnly),
		Name:      h.Name,
		Surcharge: h.Surcharge,
	}
}
