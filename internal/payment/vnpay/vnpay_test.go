package vnpay

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClient() *Client {
	c := NewClient("TESTCODE", "secret", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html", "https://example.com/api/payment/vnpay/return")
	c.now = func() time.Time {
		return time.Date(2025, 7, 12, 10, 30, 0, 0, time.UTC)
	}
	return c
}

func TestBuildPaymentURL(t *testing.T) {
	c := fixedClient()

	raw := c.BuildPaymentURL(PaymentRequest{
		TxnRef:    "ref-123",
		Amount:    420_000,
		OrderInfo: "Booking #42 Court A1",
		ClientIP:  "203.0.113.7",
	})

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	values := parsed.Query()

	assert.Equal(t, "2.1.0", values.Get("vnp_Version"))
	assert.Equal(t, "pay", values.Get("vnp_Command"))
	assert.Equal(t, "TESTCODE", values.Get("vnp_TmnCode"))
	assert.Equal(t, "42000000", values.Get("vnp_Amount"), "amount is VND x 100")
	assert.Equal(t, "ref-123", values.Get("vnp_TxnRef"))
	assert.Equal(t, "20250712103000", values.Get("vnp_CreateDate"))
	assert.Equal(t, "20250712104500", values.Get("vnp_ExpireDate"))
	assert.NotEmpty(t, values.Get("vnp_SecureHash"))
}

func TestVerifyCallbackRoundTrip(t *testing.T) {
	c := fixedClient()

	params := map[string]string{
		"vnp_TmnCode":       "TESTCODE",
		"vnp_Amount":        "42000000",
		"vnp_TxnRef":        "ref-123",
		"vnp_ResponseCode":  "00",
		"vnp_TransactionNo": "14422574",
		"vnp_BankCode":      "NCB",
	}
	query := encodeSorted(params)
	signed := query + "&vnp_SecureHash=" + c.sign(query)

	values, err := url.ParseQuery(signed)
	require.NoError(t, err)

	result, err := c.VerifyCallback(values)
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "ref-123", result.TxnRef)
	assert.Equal(t, int64(420_000), result.Amount)
	assert.Equal(t, "14422574", result.TransactionNo)
	assert.Equal(t, "NCB", result.BankCode)
}

func TestVerifyCallbackRejectsTampering(t *testing.T) {
	c := fixedClient()

	params := map[string]string{
		"vnp_Amount":       "42000000",
		"vnp_TxnRef":       "ref-123",
		"vnp_ResponseCode": "00",
	}
	query := encodeSorted(params)
	signed := query + "&vnp_SecureHash=" + c.sign(query)

	values, err := url.ParseQuery(signed)
	require.NoError(t, err)
	values.Set("vnp_Amount", "1000000") // tamper after signing

	_, err = c.VerifyCallback(values)
	assert.Error(t, err)
}

func TestVerifyCallbackMissingSignature(t *testing.T) {
	c := fixedClient()

	values := url.Values{"vnp_TxnRef": {"ref-123"}}
	_, err := c.VerifyCallback(values)
	assert.Error(t, err)
}

func TestVerifyCallbackFailureCode(t *testing.T) {
	c := fixedClient()

	params := map[string]string{
		"vnp_Amount":       "42000000",
		"vnp_TxnRef":       "ref-123",
		"vnp_ResponseCode": "24", // user cancelled at the gateway
	}
	query := encodeSorted(params)
	signed := query + "&vnp_SecureHash=" + c.sign(query)

	values, err := url.ParseQuery(signed)
	require.NoError(t, err)

	result, err := c.VerifyCallback(values)
	require.NoError(t, err)
	assert.False(t, result.Success())
}
