package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay REST API. Credentials come from deployment
// configuration; the key secret never leaves the server.
type Client struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewClient(keyID, keySecret, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// KeyID returns the publishable key identifier for the storefront widget.
func (c *Client) KeyID() string {
	return c.keyID
}

// GatewayOrder is the provider-side order created before the widget opens.
type GatewayOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   int64   `json:"amount"` // smallest currency unit
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	Rupees   float64 `json:"-"`
}

type createOrderReq struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt,omitempty"`
}

type createOrderResp struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers a payment intent with the gateway. amount is in
// rupees and converted to paise on the wire.
func (c *Client) CreateOrder(ctx context.Context, amount float64, receipt string) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	body := createOrderReq{
		Amount:   int64(amount * 100),
		Currency: "INR",
		Receipt:  receipt,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway error (status %d): %s", resp.StatusCode, string(raw))
	}

	var out createOrderResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &GatewayOrder{
		OrderID:  out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		KeyID:    c.keyID,
		Rupees:   amount,
	}, nil
}

// VerifySignature checks the post-payment signature the widget hands back:
// hex(HMAC-SHA256("<order_id>|<payment_id>", key_secret)).
func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
