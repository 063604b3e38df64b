package transport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitConfig holds configuration for rate limiting middleware.
type RateLimitConfig struct {
	// RequestLimit is the number of requests allowed per window. Zero
	// disables limiting.
	RequestLimit int
	WindowSize   time.Duration
}

// RateLimit limits requests per tenant, falling back to client IP before a
// tenant is known.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	if cfg.RequestLimit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.WindowSize <= 0 {
		cfg.WindowSize = time.Minute
	}
	retryAfter := strconv.Itoa(int(cfg.WindowSize.Seconds()))

	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowSize,
		httprate.WithKeyFuncs(keyByTenant),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", retryAfter)
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, try again later")
		}),
	)
}

func keyByTenant(r *http.Request) (string, error) {
	if tenantID, ok := TenantFromContext(r.Context()); ok && tenantID != "" {
		return "tenant:" + tenantID, nil
	}
	return httprate.KeyByIP(r)
}
