package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/realty-portal/internal/config"
	"github.com/janisto/realty-portal/internal/http/health"
	"github.com/janisto/realty-portal/internal/http/v1/properties"
	appmiddleware "github.com/janisto/realty-portal/internal/platform/middleware"
	"github.com/janisto/realty-portal/internal/service/postal"
)

const (
	testAdminToken = "local-admin-secret"
	testVisitor    = "3b9d7c1e-5a2f-4e8b-9c6d-0f1e2d3c4b5a"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            "0",
		AdminToken:      testAdminToken,
		PostalTimeout:   time.Second,
		RateLimit:       0,
		RateWindow:      time.Minute,
		ShutdownTimeout: time.Second,
	}
}

func testServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	b, err := newBackends(context.Background(), cfg)
	if err != nil {
		t.Fatalf("backends: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	b.services.Postal = postal.NewMockService()
	return newRouter(cfg, b)
}

func send(t *testing.T, srv http.Handler, method, target, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(chimiddleware.RequestIDHeader, "server-test")
	for k, v := range header {
		req.Header[k] = v
	}
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	srv := testServer(t, testConfig())

	for _, path := range []string{"/health", "/ready"} {
		resp := send(t, srv, http.MethodGet, path, "", nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		var h health.Response
		if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if h.Status != "healthy" {
			t.Fatalf("%s: expected healthy, got %s", path, h.Status)
		}
	}
}

func TestRootRedirectsToDocs(t *testing.T) {
	srv := testServer(t, testConfig())

	resp := send(t, srv, http.MethodGet, "/", "", nil)
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "/v1/api-docs" {
		t.Fatalf("expected Location /v1/api-docs, got %q", loc)
	}
}

func TestDocsSkipSecurityHeaders(t *testing.T) {
	srv := testServer(t, testConfig())

	docs := send(t, srv, http.MethodGet, "/v1/api-docs", "", nil)
	if docs.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", docs.Code)
	}
	if docs.Header().Get("X-Frame-Options") != "" {
		t.Fatal("docs must not carry hardening headers")
	}

	api := send(t, srv, http.MethodGet, "/v1/properties", "", nil)
	if api.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("expected hardening headers on API responses")
	}
}

func TestOpenAPIDocument(t *testing.T) {
	srv := testServer(t, testConfig())

	resp := send(t, srv, http.MethodGet, "/v1/openapi.json", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var doc struct {
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths      map[string]json.RawMessage `json:"paths"`
		Components struct {
			SecuritySchemes map[string]json.RawMessage `json:"securitySchemes"`
		} `json:"components"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal openapi: %v", err)
	}
	if len(doc.Servers) != 1 || doc.Servers[0].URL != "/v1" {
		t.Fatalf("unexpected servers %+v", doc.Servers)
	}
	if _, ok := doc.Components.SecuritySchemes["bearerAuth"]; !ok {
		t.Fatal("expected bearerAuth security scheme")
	}
	for _, p := range []string{"/properties", "/leads", "/postal-codes/{code}", "/admin/leads"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("expected path %s in openapi document", p)
		}
	}
	if !strings.Contains(resp.Body.String(), "application/cbor") {
		t.Fatal("expected CBOR content types in openapi document")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t, testConfig())

	resp := send(t, srv, http.MethodGet, "/metrics", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestNotFoundReturnsProblemDetails(t *testing.T) {
	srv := testServer(t, testConfig())

	resp := send(t, srv, http.MethodGet, "/missing", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json content type, got %q", ct)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 404 response: %v", err)
	}
	if problem.Status != http.StatusNotFound || problem.Detail != "resource not found" {
		t.Fatalf("unexpected problem %+v", problem)
	}
}

func TestMethodNotAllowedReturnsProblemDetails(t *testing.T) {
	srv := testServer(t, testConfig())

	resp := send(t, srv, http.MethodPost, "/health", "", nil)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", allow)
	}
}

func TestVisitorIssuedOnAPIResponses(t *testing.T) {
	srv := testServer(t, testConfig())

	resp := send(t, srv, http.MethodGet, "/v1/properties", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Header().Get(appmiddleware.VisitorHeader) == "" {
		t.Fatal("expected visitor id header")
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), appmiddleware.VisitorCookie+"=") {
		t.Fatalf("expected visitor cookie, got %q", resp.Header().Get("Set-Cookie"))
	}
}

func TestLeadPersonalizesCatalog(t *testing.T) {
	srv := testServer(t, testConfig())
	header := http.Header{appmiddleware.VisitorHeader: {testVisitor}}

	lead := send(t, srv, http.MethodPost, "/v1/leads",
		`{"name":"Maria","email":"maria@example.com","phone":"5499999","city":"Gramado","source":"popup_home"}`, header)
	if lead.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", lead.Code, lead.Body.String())
	}

	resp := send(t, srv, http.MethodGet, "/v1/properties", "", header)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var data properties.ListData
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to unmarshal catalog: %v", err)
	}
	if !data.Personalized || data.PersonalizedCity != "gramado" {
		t.Fatalf("expected catalog personalized for gramado, got %+v", data)
	}
	for _, p := range data.Items {
		if !strings.Contains(strings.ToLower(p.City), "gramado") {
			t.Fatalf("unexpected listing %s in %s", p.ID, p.City)
		}
	}

	leads := send(t, srv, http.MethodGet, "/v1/admin/leads", "",
		http.Header{"Authorization": {"Bearer " + testAdminToken}})
	if leads.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", leads.Code)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	srv := testServer(t, testConfig())

	if resp := send(t, srv, http.MethodGet, "/v1/admin/properties", "", nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	bad := http.Header{"Authorization": {"Bearer wrong"}}
	if resp := send(t, srv, http.MethodGet, "/v1/admin/properties", "", bad); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown token, got %d", resp.Code)
	}
}

func TestWriteRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 1
	srv := testServer(t, cfg)
	body := `{"name":"Ana","email":"ana@example.com","phone":"5199999"}`

	if resp := send(t, srv, http.MethodPost, "/v1/leads", body, nil); resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	resp := send(t, srv, http.MethodPost, "/v1/leads", body, nil)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp := send(t, srv, http.MethodGet, "/v1/properties", "", nil); resp.Code != http.StatusOK {
		t.Fatalf("reads must not be limited, got %d", resp.Code)
	}
}

func TestCBORAcceptHeader(t *testing.T) {
	srv := testServer(t, testConfig())

	resp := send(t, srv, http.MethodGet, "/v1/properties", "", http.Header{"Accept": {"application/cbor"}})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor content type, got %q", ct)
	}
}

func TestWildcardAcceptReturnsJSON(t *testing.T) {
	srv := testServer(t, testConfig())

	for _, accept := range []string{"*/*", "application/*", "text/plain", ""} {
		t.Run(accept, func(t *testing.T) {
			var header http.Header
			if accept != "" {
				header = http.Header{"Accept": {accept}}
			}
			resp := send(t, srv, http.MethodGet, "/v1/postal-codes/95670000", "", header)
			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected application/json, got %q", ct)
			}
		})
	}
}

func TestBackendsFailOnUnreachableRedis(t *testing.T) {
	cfg := testConfig()
	cfg.RedisURL = "redis://127.0.0.1:1/0"

	if _, err := newBackends(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unreachable redis")
	}
}

func TestBackendsCloseInReverseOrder(t *testing.T) {
	var order []string
	b := &backends{closers: []func() error{
		func() error { order = append(order, "first"); return nil },
		func() error { order = append(order, "second"); return errors.New("boom") },
	}}

	if err := b.Close(); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected joined close error, got %v", err)
	}
	if strings.Join(order, ",") != "second,first" {
		t.Fatalf("unexpected close order %v", order)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}
}

func TestSMTPConfigFromSettings(t *testing.T) {
	got := smtpConfig(config.SMTP{
		Host:       "smtp.example.com",
		Port:       2525,
		From:       "site@example.com",
		AgentEmail: "agent@example.com",
		SiteName:   "Gramado Imoveis",
		Timeout:    3 * time.Second,
		Insecure:   true,
	})
	if got.Host != "smtp.example.com" || got.Port != 2525 || got.AgentEmail != "agent@example.com" {
		t.Fatalf("unexpected smtp config %+v", got)
	}
	if got.Timeout != 3*time.Second || !got.Insecure || got.SiteName != "Gramado Imoveis" {
		t.Fatalf("timeout and flags must carry over, got %+v", got)
	}
}

func TestOpenAPICBORSkipsNilContent(t *testing.T) {
	api := humachi.New(chi.NewRouter(), huma.DefaultConfig("Test API", "1.0.0"))
	addCBORContentTypes(api)

	huma.Get(api, "/no-body", func(_ context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	if op := api.OpenAPI().Paths["/no-body"].Get; op.RequestBody != nil {
		t.Fatal("expected no request body for GET")
	}
}

func TestServerConfiguration(t *testing.T) {
	srv := newServer(":8080", http.NotFoundHandler())

	if srv.ReadTimeout != 5*time.Second {
		t.Errorf("expected ReadTimeout 5s, got %v", srv.ReadTimeout)
	}
	if srv.ReadHeaderTimeout != 2*time.Second {
		t.Errorf("expected ReadHeaderTimeout 2s, got %v", srv.ReadHeaderTimeout)
	}
	if srv.WriteTimeout != 10*time.Second {
		t.Errorf("expected WriteTimeout 10s, got %v", srv.WriteTimeout)
	}
	if srv.MaxHeaderBytes != 64<<10 {
		t.Errorf("expected MaxHeaderBytes 64KB, got %d", srv.MaxHeaderBytes)
	}
}

func TestVersionVariable(t *testing.T) {
	if Version != "dev" {
		t.Errorf("expected default Version 'dev', got %q", Version)
	}
}
