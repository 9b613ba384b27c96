// Package leads accepts contact form and pop-up submissions.
package leads

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/middleware"
	leadsvc "github.com/janisto/realty-portal/internal/service/lead"
)

// RetryAfter is advertised when a lead could not be stored.
const RetryAfter = 30 * time.Second

// Submitter captures leads.
type Submitter interface {
	Submit(ctx context.Context, visitorID string, in leadsvc.Input) (*leadsvc.Lead, error)
}

// SubmitOutput for POST /leads (201 Created)
type SubmitOutput struct {
	Location string `header:"Location" doc:"URL of the stored lead"`
	Body     Lead
}

// Register registers the lead submission endpoint.
func Register(api huma.API, svc Submitter, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-lead",
		Method:      http.MethodPost,
		Path:        "/leads",
		Summary:     "Submit a lead",
		Description: "Stores a prospect from the contact form or the home pop-up and notifies the agents. " +
			"The visitor's city, when given, personalizes the catalog for later visits.",
		Tags:          []string{"Leads"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SubmitInput) (*SubmitOutput, error) {
		b := input.Body
		lead, err := svc.Submit(ctx, middleware.VisitorID(ctx), leadsvc.Input{
			Name:         b.Name,
			Email:        b.Email,
			Phone:        b.Phone,
			Message:      b.Message,
			PostalCode:   b.PostalCode,
			Street:       b.Street,
			Neighborhood: b.Neighborhood,
			City:         b.City,
			State:        b.State,
			PropertyID:   b.PropertyID,
			Source:       leadsvc.Source(b.Source),
		})
		if err != nil {
			return nil, MapServiceError(ctx, err)
		}
		return &SubmitOutput{
			Location: prefix + "/admin/leads/" + lead.ID,
			Body:     ToLead(lead),
		}, nil
	})
}

// MapServiceError converts lead service errors to HTTP errors.
func MapServiceError(ctx context.Context, err error) error {
	var verr *leadsvc.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, &huma.ErrorDetail{Location: "body." + f.Field, Message: f.Reason})
		}
		return huma.Error422UnprocessableEntity("invalid lead", details...)
	case errors.Is(err, leadsvc.ErrNotFound):
		return huma.Error404NotFound("lead not found")
	case errors.Is(err, leadsvc.ErrPersistence):
		return huma.ErrorWithHeaders(
			huma.Error503ServiceUnavailable("lead could not be stored, please retry"),
			http.Header{"Retry-After": {strconv.Itoa(int(RetryAfter.Seconds()))}},
		)
	default:
		applog.LogError(ctx, "lead request failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}
