package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-IP token bucket in front of the mux. Visitor
// state is pruned in the background so the map does not grow with every
// address that ever hit the service.
type RateLimiter struct {
	visitors      map[string]*visitor
	mu            sync.Mutex
	limit         rate.Limit
	burst         int
	cleanupPeriod time.Duration
	visitorTTL    time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewRateLimiter starts the pruning goroutine immediately; call Shutdown
// during server teardown to stop it. limit is requests per second, burst the
// bucket size; visitors idle longer than visitorTTL are dropped every
// cleanupPeriod.
func NewRateLimiter(ctx context.Context, limit rate.Limit, burst int, cleanupPeriod, visitorTTL time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors:      make(map[string]*visitor),
		limit:         limit,
		burst:         burst,
		cleanupPeriod: cleanupPeriod,
		visitorTTL:    visitorTTL,
	}
	rl.ctx, rl.cancel = context.WithCancel(ctx)
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.getVisitor(getClientIP(r)).Allow() {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.limit, rl.burst)
		rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.ctx.Done():
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > rl.visitorTTL {
			delete(rl.visitors, ip)
		}
	}
}

// Shutdown stops the pruning goroutine.
func (rl *RateLimiter) Shutdown() {
	rl.cancel()
}
