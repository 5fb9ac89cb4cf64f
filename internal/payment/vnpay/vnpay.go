// Package vnpay builds and verifies signed payment URLs for the VNPay
// gateway. Requests are plain HTTPS redirects: every vnp_ parameter is
// sorted, URL-encoded and signed with HMAC-SHA512 over the encoded query.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	version     = "2.1.0"
	commandPay  = "pay"
	currency    = "VND"
	localeVN    = "vn"
	orderType   = "other"
	dateLayout  = "20060102150405"
	CodeSuccess = "00"
)

type Client struct {
	tmnCode    string
	hashSecret string
	payURL     string
	returnURL  string
	now        func() time.Time
}

func NewClient(tmnCode, hashSecret, payURL, returnURL string) *Client {
	return &Client{
		tmnCode:    tmnCode,
		hashSecret: hashSecret,
		payURL:     payURL,
		returnURL:  returnURL,
		now:        time.Now,
	}
}

// PaymentRequest describes one redirect to the gateway. Amount is in VND;
// VNPay expects it multiplied by 100 on the wire.
type PaymentRequest struct {
	TxnRef    string
	Amount    int64
	OrderInfo string
	ClientIP  string
}

// BuildPaymentURL returns the full redirect URL for the request, signed
// with the merchant's hash secret.
func (c *Client) BuildPaymentURL(req PaymentRequest) string {
	createdAt := c.now()
	params := map[string]string{
		"vnp_Version":    version,
		"vnp_Command":    commandPay,
		"vnp_TmnCode":    c.tmnCode,
		"vnp_Amount":     fmt.Sprintf("%d", req.Amount*100),
		"vnp_CurrCode":   currency,
		"vnp_TxnRef":     req.TxnRef,
		"vnp_OrderInfo":  req.OrderInfo,
		"vnp_OrderType":  orderType,
		"vnp_Locale":     localeVN,
		"vnp_ReturnUrl":  c.returnURL,
		"vnp_IpAddr":     req.ClientIP,
		"vnp_CreateDate": createdAt.Format(dateLayout),
		"vnp_ExpireDate": createdAt.Add(15 * time.Minute).Format(dateLayout),
	}

	query := encodeSorted(params)
	return c.payURL + "?" + query + "&vnp_SecureHash=" + c.sign(query)
}

// Result is the gateway's answer, carried back on both the browser return
// and the server-to-server IPN callback.
type Result struct {
	TxnRef        string
	Amount        int64
	ResponseCode  string
	TransactionNo string
	BankCode      string
}

func (r Result) Success() bool {
	return r.ResponseCode == CodeSuccess
}

// VerifyCallback validates the signature of a return/IPN query and extracts
// the payment result. The vnp_SecureHash parameter is excluded from the
// signed payload, as the gateway does when signing.
func (c *Client) VerifyCallback(values url.Values) (Result, error) {
	received := values.Get("vnp_SecureHash")
	if received == "" {
		return Result{}, fmt.Errorf("missing vnp_SecureHash")
	}

	params := make(map[string]string)
	for key := range values {
		if key == "vnp_SecureHash" || key == "vnp_SecureHashType" {
			continue
		}
		if strings.HasPrefix(key, "vnp_") {
			params[key] = values.Get(key)
		}
	}

	expected := c.sign(encodeSorted(params))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(received))) {
		return Result{}, fmt.Errorf("invalid signature")
	}

	var amount int64
	if _, err := fmt.Sscanf(values.Get("vnp_Amount"), "%d", &amount); err != nil {
		return Result{}, fmt.Errorf("invalid vnp_Amount: %w", err)
	}

	return Result{
		TxnRef:        values.Get("vnp_TxnRef"),
		Amount:        amount / 100,
		ResponseCode:  values.Get("vnp_ResponseCode"),
		TransactionNo: values.Get("vnp_TransactionNo"),
		BankCode:      values.Get("vnp_BankCode"),
	}, nil
}

func encodeSorted(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k]))
	}
	return sb.String()
}

func (c *Client) sign(payload string) string {
	mac := hmac.New(sha512.New, []byte(c.hashSecret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
