package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/realty-portal/internal/http/v1/leads"
	"github.com/janisto/realty-portal/internal/http/v1/properties"
	"github.com/janisto/realty-portal/internal/platform/auth"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
	appmiddleware "github.com/janisto/realty-portal/internal/platform/middleware"
	"github.com/janisto/realty-portal/internal/platform/respond"
	"github.com/janisto/realty-portal/internal/service/lead"
	propertysvc "github.com/janisto/realty-portal/internal/service/property"
)

const (
	adminToken  = "admin-token"
	clientToken = "client-token"
)

type fixture struct {
	router   http.Handler
	listings *propertysvc.MemoryStore
	leadRepo *lead.MemoryRepository
	leads    *lead.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	listings := propertysvc.NewMemoryStore(propertysvc.SampleListings()...)
	repo := lead.NewMemoryRepository()
	leadSvc := lead.NewService(repo, nil, nil)

	verifier := auth.NewStaticVerifier().
		Add(adminToken, auth.TestAdmin()).
		Add(clientToken, auth.TestUser())

	router := chi.NewRouter()
	router.Use(appmiddleware.RequestID(), applog.RequestLogger(), respond.Recoverer())
	api := humachi.New(router, huma.DefaultConfig("AdminTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))
	Register(api, listings, leadSvc, "/v1")
	return fixture{router: router, listings: listings, leadRepo: repo, leads: leadSvc}
}

func (f fixture) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder, status int) T {
	t.Helper()
	if resp.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, resp.Code, resp.Body.String())
	}
	var v T
	if err := json.Unmarshal(resp.Body.Bytes(), &v); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	return v
}

type problem struct {
	Errors []struct {
		Location string `json:"location"`
	} `json:"errors"`
}

func hasErrorAt(p problem, location string) bool {
	for _, e := range p.Errors {
		if e.Location == location {
			return true
		}
	}
	return false
}

func TestAccessControl(t *testing.T) {
	f := newFixture(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/admin/properties"},
		{http.MethodGet, "/admin/properties/gramado-house-1"},
		{http.MethodGet, "/admin/stats"},
		{http.MethodDelete, "/admin/properties/gramado-house-1"},
		{http.MethodGet, "/admin/leads"},
		{http.MethodGet, "/admin/leads/any"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			if resp := f.do(t, r.method, r.path, "", ""); resp.Code != http.StatusUnauthorized {
				t.Fatalf("anonymous: expected 401, got %d", resp.Code)
			}
			if resp := f.do(t, r.method, r.path, clientToken, ""); resp.Code != http.StatusForbidden {
				t.Fatalf("client: expected 403, got %d", resp.Code)
			}
		})
	}

	if _, err := f.listings.Get(context.Background(), "gramado-house-1"); err != nil {
		t.Fatalf("listing must survive rejected delete: %v", err)
	}
}

func TestListIncludesInactive(t *testing.T) {
	f := newFixture(t)

	data := decode[PropertyListData](t, f.do(t, http.MethodGet, "/admin/properties", adminToken, ""), http.StatusOK)
	if data.Total != 5 || len(data.Items) != 5 {
		t.Fatalf("expected all 5 listings, got %d/%d", len(data.Items), data.Total)
	}
	var inactive bool
	for _, p := range data.Items {
		if p.ID == "sp-commercial-1" {
			inactive = !p.Active
		}
	}
	if !inactive {
		t.Fatal("expected the inactive listing in the back-office list")
	}
}

func TestPropertyStats(t *testing.T) {
	f := newFixture(t)

	stats := decode[StatsData](t, f.do(t, http.MethodGet, "/admin/stats", adminToken, ""), http.StatusOK)
	if stats.Total != 5 || stats.Active != 4 || stats.Inactive != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	body := `{"active":false}`
	if resp := f.do(t, http.MethodPatch, "/admin/properties/gramado-house-1", adminToken, body); resp.Code != http.StatusOK {
		t.Fatalf("deactivate: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	stats = decode[StatsData](t, f.do(t, http.MethodGet, "/admin/stats", adminToken, ""), http.StatusOK)
	if stats.Total != 5 || stats.Active != 3 || stats.Inactive != 2 {
		t.Fatalf("expected deactivated listing counted as inactive, got %+v", stats)
	}
}

func TestPropertyStatsEmptyCatalog(t *testing.T) {
	if got := propertyStats(nil); got != (StatsData{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestListPagination(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodGet, "/admin/properties?limit=2", adminToken, "")
	data := decode[PropertyListData](t, resp, http.StatusOK)
	if len(data.Items) != 2 || data.Total != 5 {
		t.Fatalf("unexpected page %d/%d", len(data.Items), data.Total)
	}
	link := resp.Header().Get("Link")
	if !strings.Contains(link, `rel="next"`) || !strings.Contains(link, "/v1/admin/properties?") {
		t.Fatalf("unexpected Link header %q", link)
	}

	if resp := f.do(t, http.MethodGet, "/admin/properties?cursor=!!!", adminToken, ""); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid cursor, got %d", resp.Code)
	}
}

func TestGetInactiveProperty(t *testing.T) {
	f := newFixture(t)

	p := decode[properties.Property](t, f.do(t, http.MethodGet, "/admin/properties/sp-commercial-1", adminToken, ""), http.StatusOK)
	if p.Active {
		t.Fatalf("expected inactive listing, got %+v", p)
	}
	if resp := f.do(t, http.MethodGet, "/admin/properties/missing", adminToken, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCreateProperty(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/admin/properties", adminToken, `{
		"title": " Chalet near the lake ",
		"transactionType": "sale",
		"propertyType": "house",
		"city": "Canela",
		"state": "rs",
		"postalCode": "95680-000",
		"priceMin": 900000,
		"priceMax": 950000,
		"bedrooms": 3
	}`)
	p := decode[properties.Property](t, resp, http.StatusCreated)
	if loc := resp.Header().Get("Location"); loc != "/v1/admin/properties/"+p.ID {
		t.Fatalf("unexpected Location %q", loc)
	}
	if p.Title != "Chalet near the lake" || p.State != "RS" || p.PostalCode != "95680-000" {
		t.Fatalf("unexpected listing %+v", p)
	}
	if !p.Active || p.Status != "available" {
		t.Fatalf("expected active available listing, got active=%v status=%s", p.Active, p.Status)
	}

	stored, err := f.listings.Get(context.Background(), p.ID)
	if err != nil || stored.PostalCode != "95680000" {
		t.Fatalf("expected stored digits, got %+v (%v)", stored, err)
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	f := newFixture(t)

	resp := f.do(t, http.MethodPost, "/admin/properties", adminToken, `{
		"title": "Broken",
		"transactionType": "sale",
		"propertyType": "house",
		"city": "Canela",
		"state": "RS",
		"postalCode": "9568",
		"priceMin": 10,
		"priceMax": 5
	}`)
	p := decode[problem](t, resp, http.StatusUnprocessableEntity)
	if !hasErrorAt(p, "body.postalCode") || !hasErrorAt(p, "body.priceMax") {
		t.Fatalf("expected postal code and price errors, got %+v", p.Errors)
	}

	resp = f.do(t, http.MethodPost, "/admin/properties", adminToken,
		`{"title":"x","transactionType":"lease","propertyType":"house","city":"Canela","state":"RS"}`)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown transaction type, got %d", resp.Code)
	}
}

func TestUpdateProperty(t *testing.T) {
	f := newFixture(t)

	p := decode[properties.Property](t,
		f.do(t, http.MethodPatch, "/admin/properties/gramado-house-1", adminToken, `{"featured":false,"active":false}`),
		http.StatusOK)
	if p.Featured || p.Active {
		t.Fatalf("expected unfeatured inactive listing, got %+v", p)
	}
	if p.Title == "" || p.City == "" {
		t.Fatalf("expected untouched fields kept, got %+v", p)
	}
}

func TestUpdatePropertyValidation(t *testing.T) {
	f := newFixture(t)

	if resp := f.do(t, http.MethodPatch, "/admin/properties/gramado-house-1", adminToken, `{}`); resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for empty patch, got %d", resp.Code)
	}

	// gramado-house-1 is priced at 1.85M; a lower maximum is inconsistent.
	resp := f.do(t, http.MethodPatch, "/admin/properties/gramado-house-1", adminToken, `{"priceMax":1000}`)
	p := decode[problem](t, resp, http.StatusUnprocessableEntity)
	if !hasErrorAt(p, "body.priceMax") {
		t.Fatalf("expected price error, got %+v", p.Errors)
	}

	if resp := f.do(t, http.MethodPatch, "/admin/properties/missing", adminToken, `{"featured":true}`); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeleteProperty(t *testing.T) {
	f := newFixture(t)

	if resp := f.do(t, http.MethodDelete, "/admin/properties/canela-land-1", adminToken, ""); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", resp.Code, resp.Body.String())
	}
	if _, err := f.listings.Get(context.Background(), "canela-land-1"); !errors.Is(err, propertysvc.ErrNotFound) {
		t.Fatalf("expected listing removed, got %v", err)
	}
	if resp := f.do(t, http.MethodDelete, "/admin/properties/canela-land-1", adminToken, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}

func submitLead(t *testing.T, svc *lead.Service, name string) *lead.Lead {
	t.Helper()
	l, err := svc.Submit(context.Background(), "", lead.Input{
		Name:  name,
		Email: strings.ToLower(name) + "@example.com",
		Phone: "5199999",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return l
}

func TestListLeads(t *testing.T) {
	f := newFixture(t)
	submitLead(t, f.leads, "Ana")
	submitLead(t, f.leads, "Bruno")
	submitLead(t, f.leads, "Carla")

	data := decode[LeadListData](t, f.do(t, http.MethodGet, "/admin/leads?limit=2", adminToken, ""), http.StatusOK)
	if data.Total != 2 || len(data.Items) != 2 {
		t.Fatalf("expected 2 leads, got %+v", data)
	}

	if resp := f.do(t, http.MethodGet, "/admin/leads?limit=500", adminToken, ""); resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for limit above maximum, got %d", resp.Code)
	}
}

func TestGetLead(t *testing.T) {
	f := newFixture(t)
	stored := submitLead(t, f.leads, "Ana")

	got := decode[leads.Lead](t, f.do(t, http.MethodGet, "/admin/leads/"+stored.ID, adminToken, ""), http.StatusOK)
	if got.ID != stored.ID || got.Email != "ana@example.com" {
		t.Fatalf("unexpected lead %+v", got)
	}
	if resp := f.do(t, http.MethodGet, "/admin/leads/missing", adminToken, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestLeadStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.leadRepo.SetError(errors.New("connection refused"))

	resp := f.do(t, http.MethodGet, "/admin/leads", adminToken, "")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}
