package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrConfirmDeclined means Toss answered but did not approve the payment.
var ErrConfirmDeclined = errors.New("toss: payment confirmation declined")

// TossClient performs the server-to-server confirm call that Toss requires
// after the browser returns from the payment widget.
type TossClient struct {
	apiURL     string
	secretKey  string
	httpClient *http.Client
}

func NewTossClient(apiURL, secretKey string) *TossClient {
	return &TossClient{
		apiURL:     apiURL,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type tossConfirmRequest struct {
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
	PaymentKey string `json:"paymentKey"`
}

type tossConfirmResponse struct {
	Status     string `json:"status"`
	PaymentKey string `json:"paymentKey"`
	Method     string `json:"method"`
	Message    string `json:"message"`
}

// Confirm calls POST /v1/payments/confirm with HTTP Basic auth built from
// the secret key and an empty password. A declined confirmation is reported
// as a Result with Approved=false wrapped in ErrConfirmDeclined so the
// caller can still persist the failure.
func (c *TossClient) Confirm(ctx context.Context, orderID string, amount int64, paymentKey string) (Result, error) {
	reqBody, err := json.Marshal(tossConfirmRequest{
		OrderID:    orderID,
		Amount:     amount,
		PaymentKey: paymentKey,
	})
	if err != nil {
		return Result{}, fmt.Errorf("toss: failed to marshal confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v1/payments/confirm", bytes.NewReader(reqBody))
	if err != nil {
		return Result{}, fmt.Errorf("toss: failed to build confirm request: %w", err)
	}
	basicToken := base64.StdEncoding.EncodeToString([]byte(c.secretKey + ":"))
	req.Header.Set("Authorization", "Basic "+basicToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("toss: confirm request failed: %w", err)
	}
	defer resp.Body.Close()

	var confirmData tossConfirmResponse
	if err := json.NewDecoder(resp.Body).Decode(&confirmData); err != nil {
		return Result{}, fmt.Errorf("toss: failed to decode confirm response (status %d): %w", resp.StatusCode, err)
	}

	result := Result{
		Provider: ProviderToss,
		OrderID:  orderID,
		Amount:   amount,
		TxID:     confirmData.PaymentKey,
		Method:   confirmData.Method,
	}
	if result.TxID == "" {
		result.TxID = paymentKey
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Str("order_id", orderID).Str("message", confirmData.Message).Msg("toss confirm rejected")
		return result, ErrConfirmDeclined
	}

	// DONE is the documented terminal success status; an echoed paymentKey
	// on a 2xx is treated the same way.
	if confirmData.Status != "DONE" && confirmData.PaymentKey == "" {
		log.Warn().Str("order_id", orderID).Str("toss_status", confirmData.Status).Msg("toss confirm returned non-success")
		return result, ErrConfirmDeclined
	}

	result.Approved = true
	return result, nil
}
