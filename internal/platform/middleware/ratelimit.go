package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// WriteRateLimit limits state-changing requests per client IP. Safe methods
// pass through untouched. limit <= 0 disables limiting.
func WriteRateLimit(limit int, window time.Duration, onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	opts := []httprate.Option{httprate.WithKeyFuncs(httprate.KeyByIP)}
	if onLimit != nil {
		opts = append(opts, httprate.WithLimitHandler(onLimit))
	}
	limiter := httprate.Limit(limit, window, opts...)

	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				limited.ServeHTTP(w, r)
			}
		})
	}
}
