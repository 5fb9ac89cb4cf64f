package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/booking"
	"github.com/sportspot/booking-backend/internal/pkg/request"
	"github.com/sportspot/booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Availability(c *gin.Context) {
	var query AvailabilityRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	date, err := time.Parse(time.DateOnly, query.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	result, err := h.service.Availability(c.Request.Context(), query.CourtID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAvailabilityResponse(result))
}

func (h *Handler) Create(c *gin.Context) {
	userID := auth.GetUserID(c)

	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(time.DateOnly, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), userID, booking.CreateRequest{
		SubCourtID:    body.SubCourtID,
		Date:          date,
		SlotIDs:       body.SlotIDs,
		PaymentMethod: booking.PaymentMethod(body.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) CreateMulti(c *gin.Context) {
	userID := auth.GetUserID(c)

	var body MultiBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(time.DateOnly, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	req := booking.MultiRequest{
		Date:          date,
		PaymentMethod: booking.PaymentMethod(body.PaymentMethod),
	}
	for _, sel := range body.Selections {
		req.Selections = append(req.Selections, booking.Selection{
			SubCourtID: sel.SubCourtID,
			SlotIDs:    sel.SlotIDs,
		})
	}

	bookings, err := h.service.CreateMulti(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := MultiBookingResponse{Bookings: make([]BookingResponse, len(bookings))}
	for i, b := range bookings {
		resp.Bookings[i] = NewBookingResponse(b)
		resp.TotalPrice += b.TotalPrice
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Get(c *gin.Context) {
	userID := auth.GetUserID(c)
	role := auth.GetUserRole(c)

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) History(c *gin.Context) {
	userID := auth.GetUserID(c)

	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	bookings, total, err := h.service.History(c.Request.Context(), userID, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.pageOf(bookings, total, query.Page, query.PageSize))
}

func (h *Handler) OwnerOrders(c *gin.Context) {
	ownerID := auth.GetUserID(c)

	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	bookings, total, err := h.service.OwnerOrders(c.Request.Context(), ownerID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.pageOf(bookings, total, query.Page, query.PageSize))
}

func (h *Handler) ListAll(c *gin.Context) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	filter, err := query.toFilter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": err.Error()})
		return
	}

	bookings, total, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.pageOf(bookings, total, query.Page, query.PageSize))
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := auth.GetUserID(c)
	role := auth.GetUserRole(c)

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), uri.ID, userID, role); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecordDeposit lets the court owner (or an admin) mark a pending booking
// deposited, for deposits collected in person.
func (h *Handler) RecordDeposit(c *gin.Context) {
	userID := auth.GetUserID(c)
	role := auth.GetUserRole(c)

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.RecordDeposit(c.Request.Context(), uri.ID, userID, role); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) OwnerStats(c *gin.Context) {
	stats, err := h.service.OwnerStats(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStatsResponse(stats))
}

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.service.AdminStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewStatsResponse(stats))
}

// CheckInQR serves a PNG QR code that encodes the booking's check-in
// payload, for the customer to present at the facility.
func (h *Handler) CheckInQR(c *gin.Context) {
	userID := auth.GetUserID(c)
	role := auth.GetUserRole(c)

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := fmt.Sprintf("booking:%d|date:%s|sub_court:%d|status:%s",
		b.ID, b.Date.Format(time.DateOnly), b.SubCourtID, b.Status)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) pageOf(bookings []*booking.Booking, total, page, pageSize int) response.PageResponse[BookingResponse] {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return response.NewPageResponse(items, page, pageSize, total)
}

func (q ListBookingsRequest) toFilter() (booking.Filter, error) {
	filter := booking.Filter{
		CourtID:  q.CourtID,
		Status:   booking.Status(q.Status),
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.Date != "" {
		date, err := time.Parse(time.DateOnly, q.Date)
		if err != nil {
			return booking.Filter{}, err
		}
		filter.Date = &date
	}
	return filter, nil
}
