// Package health serves liveness and readiness probes outside the versioned
// API.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// checkTimeout bounds every readiness check.
const checkTimeout = 2 * time.Second

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Response is the payload for the health endpoints.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Handler is a plain HTTP handler for the liveness endpoint.
func Handler(w http.ResponseWriter, _ *http.Request) {
	write(w, http.StatusOK, Response{Status: statusHealthy})
}

// Readiness runs every check concurrently and answers 503 when any fails.
func Readiness(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		var (
			mu      sync.Mutex
			results = make(map[string]string, len(checks))
			healthy = true
		)
		var g errgroup.Group
		for name, check := range checks {
			g.Go(func() error {
				status := statusHealthy
				if err := check(ctx); err != nil {
					status = statusUnhealthy
					applog.LogWarn(r.Context(), "readiness check failed",
						zap.String("check", name), zap.Error(err))
				}
				mu.Lock()
				defer mu.Unlock()
				results[name] = status
				if status != statusHealthy {
					healthy = false
				}
				return nil
			})
		}
		_ = g.Wait()

		if !healthy {
			write(w, http.StatusServiceUnavailable, Response{Status: statusUnhealthy, Checks: results})
			return
		}
		write(w, http.StatusOK, Response{Status: statusHealthy, Checks: results})
	}
}

func write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
