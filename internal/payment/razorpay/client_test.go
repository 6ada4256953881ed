package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("rzp_test_key", "topsecret", "")

	good := sign("topsecret", "order_123", "pay_456")
	assert.True(t, c.VerifySignature("order_123", "pay_456", good))

	assert.False(t, c.VerifySignature("order_123", "pay_456", "deadbeef"))
	assert.False(t, c.VerifySignature("order_999", "pay_456", good))

	wrongKey := sign("othersecret", "order_123", "pay_456")
	assert.False(t, c.VerifySignature("order_123", "pay_456", wrongKey))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "topsecret", pass)

		var req createOrderReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(56000), req.Amount)
		assert.Equal(t, "INR", req.Currency)

		json.NewEncoder(w).Encode(createOrderResp{
			ID:       "order_abc",
			Amount:   req.Amount,
			Currency: req.Currency,
		})
	}))
	defer srv.Close()

	c := NewClient("rzp_test_key", "topsecret", srv.URL)

	order, err := c.CreateOrder(context.Background(), 560, "ORD-1700000000000")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.OrderID)
	assert.Equal(t, int64(56000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "rzp_test_key", order.KeyID)
}

func TestCreateOrder_RejectsNonPositiveAmount(t *testing.T) {
	c := NewClient("rzp_test_key", "topsecret", "")

	_, err := c.CreateOrder(context.Background(), 0, "")
	assert.Error(t, err)

	_, err = c.CreateOrder(context.Background(), -5, "")
	assert.Error(t, err)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"description":"Authentication failed"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad", "bad", srv.URL)
	_, err := c.CreateOrder(context.Background(), 100, "")
	assert.ErrorContains(t, err, "status 401")
}
