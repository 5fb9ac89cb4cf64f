package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportspot/booking-backend/internal/auth"
	"github.com/sportspot/booking-backend/internal/booking"
	"github.com/sportspot/booking-backend/internal/payment/vnpay"
)

const (
	payerID    = "11111111-1111-1111-1111-111111111111"
	hashSecret = "secret"
)

type fakeRepo struct {
	payments []*Payment
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, p *Payment) error {
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakeRepo) GetByTxnRef(_ context.Context, txnRef string) (*Payment, error) {
	for _, p := range r.payments {
		if p.TxnRef == txnRef {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) ListByBooking(_ context.Context, bookingID int) ([]*Payment, error) {
	var out []*Payment
	for _, p := range r.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) Settle(_ context.Context, p *Payment) error {
	for i, existing := range r.payments {
		if existing.ID == p.ID {
			if existing.Status != StatusPending {
				return ErrAlreadySettled
			}
			r.payments[i] = p
			return nil
		}
	}
	return ErrNotFound
}

// fakeBookingService overrides only the methods the payment service calls.
type fakeBookingService struct {
	booking.Service
	bookings  map[int]*booking.Booking
	paid      []int
	deposited []int
}

func (f *fakeBookingService) GetByID(_ context.Context, id int, _ string, _ auth.Role) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return b, nil
}

func (f *fakeBookingService) MarkPaid(_ context.Context, id int) error {
	f.paid = append(f.paid, id)
	f.bookings[id].Status = booking.StatusPaid
	return nil
}

func (f *fakeBookingService) MarkDeposited(_ context.Context, id int) error {
	f.deposited = append(f.deposited, id)
	f.bookings[id].Status = booking.StatusDeposited
	return nil
}

func fixture(total int64, status booking.Status) (Service, *fakeRepo, *fakeBookingService) {
	bookings := &fakeBookingService{
		bookings: map[int]*booking.Booking{
			1: {ID: 1, UserID: payerID, SubCourtName: "Court A1", TotalPrice: total, Status: status},
		},
	}
	gateway := vnpay.NewClient("TESTCODE", hashSecret, "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html", "https://example.com/api/payment/vnpay/return")
	repo := newFakeRepo()
	return NewService(repo, gateway, bookings), repo, bookings
}

// signedCallback builds a gateway callback for the payment, signed the way
// VNPay signs: HMAC-SHA512 over the sorted, URL-encoded query.
func signedCallback(p *Payment, responseCode string) url.Values {
	values := url.Values{
		"vnp_TxnRef":        {p.TxnRef},
		"vnp_Amount":        {strconv.FormatInt(p.Amount*100, 10)},
		"vnp_ResponseCode":  {responseCode},
		"vnp_TransactionNo": {"14422574"},
		"vnp_BankCode":      {"NCB"},
	}
	mac := hmac.New(sha512.New, []byte(hashSecret))
	mac.Write([]byte(values.Encode()))
	values.Set("vnp_SecureHash", hex.EncodeToString(mac.Sum(nil)))
	return values
}

func TestDepositChargesShareOfTotal(t *testing.T) {
	svc, repo, _ := fixture(400_000, booking.StatusPending)

	_, err := svc.CreatePaymentURL(context.Background(), 1, payerID, auth.RoleCustomer, KindDeposit, "203.0.113.7")
	require.NoError(t, err)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, KindDeposit, repo.payments[0].Kind)
	assert.Equal(t, int64(120_000), repo.payments[0].Amount)
}

func TestFullPaymentAfterDepositChargesRemainder(t *testing.T) {
	svc, repo, _ := fixture(333_333, booking.StatusDeposited)

	_, err := svc.CreatePaymentURL(context.Background(), 1, payerID, auth.RoleCustomer, KindFull, "203.0.113.7")
	require.NoError(t, err)

	// Deposit rounds down to 99_999; the closing payment carries the rest.
	require.Len(t, repo.payments, 1)
	assert.Equal(t, int64(233_334), repo.payments[0].Amount)
}

func TestDepositOnlyOpenWhilePending(t *testing.T) {
	svc, _, _ := fixture(400_000, booking.StatusDeposited)

	_, err := svc.CreatePaymentURL(context.Background(), 1, payerID, auth.RoleCustomer, KindDeposit, "203.0.113.7")
	assert.ErrorIs(t, err, ErrDepositNotOpen)
}

func TestCreatePaymentURLRejectsUnknownKind(t *testing.T) {
	svc, _, _ := fixture(400_000, booking.StatusPending)

	_, err := svc.CreatePaymentURL(context.Background(), 1, payerID, auth.RoleCustomer, Kind("partial"), "203.0.113.7")
	assert.ErrorIs(t, err, ErrInvalidKind)
}

func TestCallbackSettlesDeposit(t *testing.T) {
	svc, repo, bookings := fixture(400_000, booking.StatusPending)
	ctx := context.Background()

	_, err := svc.CreatePaymentURL(ctx, 1, payerID, auth.RoleCustomer, KindDeposit, "203.0.113.7")
	require.NoError(t, err)

	p, err := svc.HandleCallback(ctx, signedCallback(repo.payments[0], vnpay.CodeSuccess))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, p.Status)
	assert.Equal(t, []int{1}, bookings.deposited, "a settled deposit moves the booking to deposited")
	assert.Empty(t, bookings.paid)
}

func TestCallbackSettlesFullPayment(t *testing.T) {
	svc, repo, bookings := fixture(400_000, booking.StatusPending)
	ctx := context.Background()

	_, err := svc.CreatePaymentURL(ctx, 1, payerID, auth.RoleCustomer, KindFull, "203.0.113.7")
	require.NoError(t, err)

	p, err := svc.HandleCallback(ctx, signedCallback(repo.payments[0], vnpay.CodeSuccess))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, p.Status)
	assert.Equal(t, []int{1}, bookings.paid)
	assert.Empty(t, bookings.deposited)
}

func TestCallbackFailureLeavesBookingAlone(t *testing.T) {
	svc, repo, bookings := fixture(400_000, booking.StatusPending)
	ctx := context.Background()

	_, err := svc.CreatePaymentURL(ctx, 1, payerID, auth.RoleCustomer, KindDeposit, "203.0.113.7")
	require.NoError(t, err)

	p, err := svc.HandleCallback(ctx, signedCallback(repo.payments[0], "24"))
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, p.Status)
	assert.Empty(t, bookings.deposited)
	assert.Empty(t, bookings.paid)
}
