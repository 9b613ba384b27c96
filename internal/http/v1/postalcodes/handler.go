// Package postalcodes exposes postal code lookup so forms can prefill the
// address.
package postalcodes

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/service/postal"
)

// LookupInput for GET /postal-codes/{code}
type LookupInput struct {
	Code string `path:"code" maxLength:"16" doc:"Postal code, with or without mask" example:"95670-000"`
}

// Address is a resolved postal address.
type Address struct {
	PostalCode   string `json:"postalCode"             doc:"Masked postal code" example:"95670-000"`
	Street       string `json:"street,omitempty"       doc:"Street"             example:"Avenida Borges de Medeiros"`
	Neighborhood string `json:"neighborhood,omitempty" doc:"Neighborhood"       example:"Centro"`
	City         string `json:"city,omitempty"         doc:"City"               example:"Gramado"`
	State        string `json:"state,omitempty"        doc:"Two-letter state"   example:"RS"`
}

// LookupOutput for GET /postal-codes/{code}
type LookupOutput struct {
	Body Address
}

// Register registers the postal lookup endpoint.
func Register(api huma.API, svc postal.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "lookup-postal-code",
		Method:      http.MethodGet,
		Path:        "/postal-codes/{code}",
		Summary:     "Look up a postal code",
		Description: "Resolves an 8-digit postal code to street, neighborhood, city and state.",
		Tags:        []string{"Postal codes"},
	}, func(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
		addr, err := svc.Lookup(ctx, input.Code)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &LookupOutput{Body: Address{
			PostalCode:   postal.Mask(addr.PostalCode),
			Street:       addr.Street,
			Neighborhood: addr.Neighborhood,
			City:         addr.City,
			State:        addr.State,
		}}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, postal.ErrFormat):
		return huma.Error422UnprocessableEntity("postal code must have 8 digits", &huma.ErrorDetail{
			Location: "path.code",
			Message:  "must contain exactly 8 digits",
		})
	case errors.Is(err, postal.ErrNotFound):
		return huma.Error404NotFound("postal code not found")
	case errors.Is(err, postal.ErrService):
		return huma.Error502BadGateway("postal directory unavailable")
	default:
		applog.LogError(ctx, "postal lookup failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}
