// Package personalization exposes the visitor's personalization state.
package personalization

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"go.uber.org/zap"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/middleware"
	"github.com/janisto/realty-portal/internal/platform/timeutil"
	personalizationsvc "github.com/janisto/realty-portal/internal/service/personalization"
)

// heartbeatInterval is below the idle timeout of common proxies.
var heartbeatInterval = 25 * time.Second

// Store is the personalization state the handlers read and write.
type Store interface {
	Get(ctx context.Context, visitorID string) (string, bool)
	Clear(ctx context.Context, visitorID string) error
	PromptShown(ctx context.Context, visitorID string) bool
	MarkPromptShown(ctx context.Context, visitorID string) error
	Subscribe(fn personalizationsvc.Listener) func()
}

// GetOutput for GET /personalization
type GetOutput struct {
	Body State
}

// Register registers the personalization endpoints.
func Register(api huma.API, store Store) {
	huma.Register(api, huma.Operation{
		OperationID: "get-personalization",
		Method:      http.MethodGet,
		Path:        "/personalization",
		Summary:     "Get personalization state",
		Description: "Returns the city used to personalize the catalog and whether the onboarding prompt was shown.",
		Tags:        []string{"Personalization"},
	}, func(ctx context.Context, _ *struct{}) (*GetOutput, error) {
		visitorID, err := requireVisitor(ctx)
		if err != nil {
			return nil, err
		}
		city, _ := store.Get(ctx, visitorID)
		return &GetOutput{Body: State{
			VisitorID:   visitorID,
			City:        city,
			PromptShown: store.PromptShown(ctx, visitorID),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "clear-personalization",
		Method:        http.MethodDelete,
		Path:          "/personalization",
		Summary:       "Clear personalization",
		Description:   "Forgets the visitor's city. The catalog returns to its default order.",
		Tags:          []string{"Personalization"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		visitorID, err := requireVisitor(ctx)
		if err != nil {
			return nil, err
		}
		if err := store.Clear(ctx, visitorID); err != nil {
			return nil, mapStoreError(ctx, err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "mark-personalization-prompt",
		Method:        http.MethodPut,
		Path:          "/personalization/prompt",
		Summary:       "Mark onboarding prompt shown",
		Description:   "Records that the city prompt was shown so it is not displayed again.",
		Tags:          []string{"Personalization"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		visitorID, err := requireVisitor(ctx)
		if err != nil {
			return nil, err
		}
		if err := store.MarkPromptShown(ctx, visitorID); err != nil {
			return nil, mapStoreError(ctx, err)
		}
		return nil, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "stream-personalization",
		Method:      http.MethodGet,
		Path:        "/personalization/events",
		Summary:     "Stream personalization changes",
		Description: "Server-sent events for the calling visitor. The current state is sent first, " +
			"then one event per change, with periodic heartbeats.",
		Tags: []string{"Personalization"},
	}, map[string]any{
		"personalization": Event{},
		"heartbeat":       Heartbeat{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		stream(ctx, store, send)
	})
}

func stream(ctx context.Context, store Store, send sse.Sender) {
	visitorID := middleware.VisitorID(ctx)
	if visitorID == "" {
		applog.LogWarn(ctx, "personalization stream without visitor id")
		return
	}

	changes := make(chan personalizationsvc.Change, 8)
	unsubscribe := store.Subscribe(func(c personalizationsvc.Change) {
		if c.VisitorID != visitorID {
			return
		}
		select {
		case changes <- c:
		default:
			// Slow consumer; the next change or reconnect carries the state.
		}
	})
	defer unsubscribe()

	city, _ := store.Get(ctx, visitorID)
	if err := send.Data(Event{City: city, Cleared: city == ""}); err != nil {
		return
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-changes:
			if err := send.Data(Event{City: c.City, Cleared: c.Cleared}); err != nil {
				applog.LogInfo(ctx, "personalization stream closed", zap.Error(err))
				return
			}
		case t := <-ticker.C:
			if err := send.Data(Heartbeat{Time: timeutil.Time{Time: t.UTC()}}); err != nil {
				return
			}
		}
	}
}

func requireVisitor(ctx context.Context) (string, error) {
	visitorID := middleware.VisitorID(ctx)
	if visitorID == "" {
		return "", huma.Error400BadRequest("visitor id required")
	}
	return visitorID, nil
}

func mapStoreError(ctx context.Context, err error) error {
	if errors.Is(err, personalizationsvc.ErrNoVisitor) {
		return huma.Error400BadRequest("visitor id required")
	}
	applog.LogError(ctx, "personalization update failed", err)
	return huma.Error503ServiceUnavailable("personalization temporarily unavailable")
}
