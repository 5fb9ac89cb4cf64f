package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sportspot/booking-backend/internal/pkg/request"
	"github.com/sportspot/booking-backend/internal/pkg/response"
	"github.com/sportspot/booking-backend/internal/timeslot"
)

type Handler struct {
	service timeslot.Service
}

func NewHandler(service timeslot.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListSlots(c *gin.Context) {
	slots, err := h.service.ListSlots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TimeSlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewTimeSlotResponse(s)
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) CreateSlot(c *gin.Context) {
	var body CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), timeslot.CreateSlotRequest{
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Surcharge: body.Surcharge,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTimeSlotResponse(slot))
}

func (h *Handler) UpdateSlot(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slot, err := h.service.UpdateSlot(c.Request.Context(), uri.ID, timeslot.UpdateSlotRequest{
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Surcharge: body.Surcharge,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTimeSlotResponse(slot))
}

func (h *Handler) DeleteSlot(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.DeleteSlot(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListHolidays(c *gin.Context) {
	holidays, err := h.service.ListHolidays(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		items[i] = NewHolidayResponse(h)
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) CreateHoliday(c *gin.Context) {
	var body CreateHolidayRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(time.DateOnly, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	holiday, err := h.service.CreateHoliday(c.Request.Context(), timeslot.CreateHolidayRequest{
		Date:      date,
		Name:      body.Name,
		Surcharge: body.Surcharge,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewHolidayResponse(holiday))
}

func (h *Handler) ListWeekSurcharges(c *gin.Context) {
	surcharges, err := h.service.ListWeekSurcharges(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]WeekSurchargeResponse, len(surcharges))
	for i, w := range surcharges {
		items[i] = NewWeekSurchargeResponse(w)
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

func (h *Handler) CreateWeekSurcharge(c *gin.Context) {
	var body CreateWeekSurchargeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	w, err := h.service.CreateWeekSurcharge(c.Request.Context(), timeslot.CreateWeekSurchargeRequest{
		Weekday:   time.Weekday(*body.Weekday),
		Surcharge: body.Surcharge,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewWeekSurchargeResponse(w))
}

func (h *Handler) UpdateWeekSurcharge(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateWeekSurchargeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	w, err := h.service.UpdateWeekSurcharge(c.Request.Context(), uri.ID, body.Surcharge)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWeekSurchargeResponse(w))
}

func (h *Handler) DeleteWeekSurcharge(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.DeleteWeekSurcharge(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteHoliday(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.DeleteHoliday(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
