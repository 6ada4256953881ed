package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func rateLimitedHandler(rl *RateLimiter) http.Handler {
	return rl.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doRequest(h http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 2, time.Minute, time.Minute)
	defer rl.Shutdown()
	h := rateLimitedHandler(rl)

	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1"))

	// Buckets are per IP; a different address is unaffected.
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2"))
}

func TestRateLimiter_PrunesIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 1, time.Minute, 10*time.Millisecond)
	defer rl.Shutdown()
	h := rateLimitedHandler(rl)

	doRequest(h, "10.0.0.1")
	time.Sleep(20 * time.Millisecond)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}
