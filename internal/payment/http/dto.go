package http

import (
	"time"

	"github.com/sportspot/booking-backend/internal/payment"
)

type CreatePaymentRequest struct {
	BookingID int    `json:"booking_id" binding:"required,min=1"`
	Kind      string `json:"kind" binding:"omitempty,oneof=deposit full"`
}

type CreatePaymentResponse struct {
	PaymentURL string `json:"payment_url"`
}

type PaymentResponse struct {
	ID            int        `json:"id"`
	BookingID     int        `json:"booking_id"`
	Kind          string     `json:"kind"`
	TxnRef        string     `json:"txn_ref"`
	Amount        int64      `json:"amount"`
	Status        string     `json:"status"`
	TransactionNo string     `json:"transaction_no,omitempty"`
	BankCode      string     `json:"bank_code,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Kind:          string(p.Kind),
		TxnRef:        p.TxnRef,
		Amount:        p.Amount,
		Status:        string(p.Status),
		TransactionNo: p.TransactionNo,
		BankCode:      p.BankCode,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}
