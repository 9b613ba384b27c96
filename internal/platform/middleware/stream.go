package middleware

import (
	"net/http"
	"strings"
	"time"
)

// Streaming clears the server write deadline for server-sent event requests
// so http.Server.WriteTimeout does not cut long-lived streams.
func Streaming() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isEventStream(r) {
				_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isEventStream(r *http.Request) bool {
	return r.Method == http.MethodGet &&
		(strings.HasSuffix(r.URL.Path, "/events") ||
			strings.Contains(r.Header.Get("Accept"), "text/event-stream"))
}
