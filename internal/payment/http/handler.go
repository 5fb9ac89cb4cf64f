package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/payment"
	"github.com/sportspot/booking-backend/internal/pkg/request"
	"github.com/sportspot/booking-backend/internal/pkg/response"
)

type Handler struct {
	service payment.Service
}

func NewHandler(service payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	userID := auth.GetUserID(c)
	role := auth.GetUserRole(c)

	var body CreatePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	kind := payment.Kind(body.Kind)
	if kind == "" {
		kind = payment.KindFull
	}

	paymentURL, err := h.service.CreatePaymentURL(c.Request.Context(), body.BookingID, userID, role, kind, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatePaymentResponse{PaymentURL: paymentURL})
}

// Return handles the browser redirect back from the gateway.
func (h *Handler) Return(c *gin.Context) {
	p, err := h.service.HandleCallback(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}

// IPN handles the gateway's server-to-server notification. The gateway
// expects its own {RspCode, Message} envelope, even on failure.
func (h *Handler) IPN(c *gin.Context) {
	p, err := h.service.HandleCallback(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"RspCode": "97", "Message": "Invalid Checksum"})
		return
	}

	if p.Status == payment.StatusSuccess {
		c.JSON(http.StatusOK, gin.H{"RspCode": "00", "Message": "Confirm Success"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"RspCode": "00", "Message": "Confirmed"})
}

func (h *Handler) ListByBooking(c *gin.Context) {
	userID := auth.GetUserID(c)
	role := auth.GetUserRole(c)

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	payments, err := h.service.ListByBooking(c.Request.Context(), uri.ID, userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		items[i] = NewPaymentResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
