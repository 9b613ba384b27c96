package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

const (
	// VisitorCookie keys the anonymous personalization state in browsers.
	VisitorCookie = "visitor_id"
	// VisitorHeader carries the visitor id for non-browser clients and is
	// echoed on every response.
	VisitorHeader = "X-Visitor-Id"

	visitorMaxAge = 180 * 24 * time.Hour
)

type visitorKey struct{}

// Visitor resolves the anonymous visitor id from the cookie, then the
// header. Missing or malformed ids are replaced with a new UUID and the
// cookie is (re)issued.
func Visitor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, fromCookie := "", false
			if c, err := r.Cookie(VisitorCookie); err == nil && validVisitorID(c.Value) {
				id, fromCookie = c.Value, true
			} else if h := r.Header.Get(VisitorHeader); validVisitorID(h) {
				id = h
			}
			if id == "" {
				id = uuid.NewString()
			}
			if !fromCookie {
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https"),
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(VisitorHeader, id)
			ctx := applog.WithFields(WithVisitorID(r.Context(), id), zap.String("visitorId", id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validVisitorID(s string) bool {
	if !printableASCII(s, 64) {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// WithVisitorID returns ctx carrying id.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorID returns the visitor id resolved by Visitor, or "".
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}
