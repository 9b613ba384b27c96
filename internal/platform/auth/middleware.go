package auth

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// SchemeName is the OpenAPI security scheme registered for bearer tokens.
const SchemeName = "bearerAuth"

// ScopeAdmin on an operation's security requirement restricts it to admins.
const ScopeAdmin = "admin"

// Bearer is the security requirement for signed-in users.
func Bearer() []map[string][]string {
	return []map[string][]string{{SchemeName: {}}}
}

// Admin is the security requirement for back-office operations.
func Admin() []map[string][]string {
	return []map[string][]string{{SchemeName: {ScopeAdmin}}}
}

type userContextKey struct{}

// NewAuthMiddleware authenticates operations that declare a security
// requirement. Requirements carrying ScopeAdmin also need User.Admin.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		security := ctx.Operation().Security
		if len(security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			applog.LogWarn(ctx.Context(), "auth failed: missing or invalid header",
				zap.String("reason", "no_token"))
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		user, err := verifier.Verify(ctx.Context(), token)
		if err != nil || user == nil {
			if err == nil {
				err = ErrInvalidToken
			}
			applog.LogWarn(ctx.Context(), "auth failed: token verification failed",
				zap.String("reason", reason(err)))
			if errors.Is(err, ErrCertificateFetch) {
				ctx.SetHeader("Retry-After", "30")
				_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable,
					"authentication service temporarily unavailable")
				return
			}
			ctx.SetHeader("WWW-Authenticate", "Bearer")
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if requiresAdmin(security) && !user.Admin {
			applog.LogWarn(ctx.Context(), "auth failed: admin required",
				zap.String("uid", user.UID))
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "admin access required")
			return
		}

		next(huma.WithValue(ctx, userContextKey{}, user))
	}
}

func requiresAdmin(security []map[string][]string) bool {
	for _, req := range security {
		for _, scopes := range req {
			if slices.Contains(scopes, ScopeAdmin) {
				return true
			}
		}
	}
	return false
}

// reason is a log-safe category for an auth failure.
func reason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	default:
		return "unknown"
	}
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *User {
	user, _ := ctx.Value(userContextKey{}).(*User)
	return user
}
