package postal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/metrics"
)

const (
	defaultBaseURL = "https://viacep.com.br/ws"
	userAgent      = "realty-portal"
)

// Client implements Service against a ViaCEP-compatible directory.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewClient creates a new directory client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// viacepAddress is the directory payload. Every field may be absent.
type viacepAddress struct {
	CEP        string    `json:"cep"`
	Logradouro string    `json:"logradouro"`
	Bairro     string    `json:"bairro"`
	Localidade string    `json:"localidade"`
	UF         string    `json:"uf"`
	Erro       errorFlag `json:"erro"`
}

// errorFlag accepts both `true` and `"true"`; the directory has used each.
type errorFlag bool

func (f *errorFlag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", `"true"`:
		*f = true
	default:
		*f = false
	}
	return nil
}

// Lookup validates raw and resolves it with a single directory request.
func (c *Client) Lookup(ctx context.Context, raw string) (*Address, error) {
	code, err := Parse(raw)
	if err != nil {
		metrics.PostalLookup(metrics.ResultInvalid)
		return nil, err
	}

	addr, err := c.fetch(ctx, code)
	switch {
	case err == nil:
		metrics.PostalLookup(metrics.ResultFound)
	case isKind(err, LookupErrorKindNotFound):
		metrics.PostalLookup(metrics.ResultNotFound)
	default:
		metrics.PostalLookup(metrics.ResultError)
	}
	return addr, err
}

func (c *Client) fetch(ctx context.Context, code string) (*Address, error) {
	u := c.baseURL + "/" + code + "/json/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &LookupError{Kind: LookupErrorKindService, Code: code, cause: fmt.Errorf("%w: creating request: %w", ErrService, err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		applog.LogWarn(ctx, "postal directory unreachable", zap.String("code", code), zap.Error(err))
		return nil, &LookupError{Kind: LookupErrorKindService, Code: code, cause: fmt.Errorf("%w: %w", ErrService, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusNotFound:
		return nil, lookupErrorFromResponse(resp, code, LookupErrorKindNotFound, ErrNotFound)
	default:
		applog.LogWarn(ctx, "postal directory error response",
			zap.String("code", code),
			zap.Int("status", resp.StatusCode),
		)
		return nil, lookupErrorFromResponse(resp, code, LookupErrorKindService, ErrService)
	}

	var payload viacepAddress
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &LookupError{
			Kind:   LookupErrorKindService,
			Code:   code,
			Status: resp.StatusCode,
			cause:  fmt.Errorf("%w: decoding directory response: %w", ErrService, err),
		}
	}
	if payload.Erro {
		return nil, lookupErrorFromResponse(resp, code, LookupErrorKindNotFound, ErrNotFound)
	}

	return &Address{
		PostalCode:   code,
		Street:       strings.TrimSpace(payload.Logradouro),
		Neighborhood: strings.TrimSpace(payload.Bairro),
		City:         strings.TrimSpace(payload.Localidade),
		State:        strings.ToUpper(strings.TrimSpace(payload.UF)),
	}, nil
}

func lookupErrorFromResponse(resp *http.Response, code string, kind LookupErrorKind, cause error) *LookupError {
	return &LookupError{
		Kind:   kind,
		Code:   code,
		Status: resp.StatusCode,
		cause:  cause,
	}
}

func isKind(err error, kind LookupErrorKind) bool {
	var le *LookupError
	return errors.As(err, &le) && le.Kind == kind
}

// Compile-time interface check
var _ Service = (*Client)(nil)
