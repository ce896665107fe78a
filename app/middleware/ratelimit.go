package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// RateLimitMessage is returned to clients that exceed the creation quota.
const RateLimitMessage = "Too many blog posts. Please try again later."

// RateLimiter is a fixed-window request counter keyed by client address.
// All counters reset together when the window rolls over; a client that
// exhausts its quota stays blocked until then.
type RateLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	max         int
	counts      map[string]int
	windowStart time.Time
	now         func() time.Time
}

// NewRateLimiter creates a RateLimiter allowing max requests per client
// within each window.
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:      window,
		max:         max,
		counts:      make(map[string]int),
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Allow reports whether the client may proceed, counting the request
// against its quota when it may.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.windowStart) >= rl.window {
		rl.counts = make(map[string]int)
		rl.windowStart = now
	}

	if rl.counts[client] >= rl.max {
		return false
	}
	rl.counts[client]++
	return true
}

// Limit wraps a handler, rejecting over-quota clients with 429 before the
// handler runs.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientAddr(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": RateLimitMessage})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientAddr identifies the originating client: the first hop of
// X-Forwarded-For when present, otherwise the connection's remote host.
func clientAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.Index(fwd, ","); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
