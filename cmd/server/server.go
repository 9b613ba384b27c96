package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/realty-portal/internal/config"
	"github.com/janisto/realty-portal/internal/http/health"
	"github.com/janisto/realty-portal/internal/http/v1/routes"
	"github.com/janisto/realty-portal/internal/platform/auth"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/metrics"
	appmiddleware "github.com/janisto/realty-portal/internal/platform/middleware"
	"github.com/janisto/realty-portal/internal/platform/respond"
)

const (
	apiPrefix = "/v1"
	docsPath  = "/api-docs"
)

func newRouter(cfg *config.Config, b *backends) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(apiPrefix+docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORSOrigins...),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		appmiddleware.Streaming(),
		applog.RequestLogger(),
		appmiddleware.Visitor(),
		applog.AccessLogger(),
		respond.Recoverer(),
		appmiddleware.WriteRateLimit(cfg.RateLimit, cfg.RateWindow, respond.TooManyRequestsHandler()),
	)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respond.WriteRedirect(w, r, apiPrefix+docsPath, http.StatusFound)
	})
	router.Get("/health", health.Handler)
	router.Get("/ready", health.Readiness(b.checks))
	router.Handle("/metrics", metrics.Handler())

	router.Route(apiPrefix, func(r chi.Router) {
		// Huma falls back to JSON for wildcard or unsupported Accept values,
		// which RFC 9110 section 12.4.1 permits.
		api := humachi.New(r, humaConfig())
		addCBORContentTypes(api)
		routes.Register(api, b.verifier, b.services)
	})
	return router
}

func humaConfig() huma.Config {
	cfg := huma.DefaultConfig("Realty Portal API", Version)
	cfg.Info.Description = "Property catalog with visitor personalization, lead capture and a back office for agents."
	cfg.DocsPath = docsPath
	// Operations are mounted under the prefix; the server entry makes the
	// OpenAPI document and docs page resolve paths with it.
	cfg.Servers = []*huma.Server{{URL: apiPrefix}}
	if cfg.Components.SecuritySchemes == nil {
		cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	cfg.Components.SecuritySchemes[auth.SchemeName] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
		Description:  "Firebase ID token. Admin operations need the admin claim.",
	}
	return cfg
}

// addCBORContentTypes documents CBOR next to JSON on every request and
// response body.
func addCBORContentTypes(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}
