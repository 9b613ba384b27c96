// Package profile serves the signed-in client's own contact details.
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/realty-portal/internal/platform/auth"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/timeutil"
	profilesvc "github.com/janisto/realty-portal/internal/service/profile"
)

// Register registers profile endpoints.
func Register(api huma.API, svc profilesvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/me/profile",
		Summary:       "Create own profile",
		Description:   "Registers the authenticated user's profile. The email is taken from the token.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusCreated,
		Security:      auth.Bearer(),
	}, func(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Create(ctx, user.UID, profilesvc.CreateParams{
			Name:    input.Body.Name,
			Email:   user.Email,
			Phone:   input.Body.Phone,
			Address: input.Body.Address,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &CreateOutput{
			Location: prefix + "/me/profile",
			Body:     toHTTPProfile(p),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/me/profile",
		Summary:     "Get own profile",
		Description: "Returns the authenticated user's contact details.",
		Tags:        []string{"Profile"},
		Security:    auth.Bearer(),
	}, func(ctx context.Context, _ *struct{}) (*GetOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &GetOutput{Body: toHTTPProfile(p)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/me/profile",
		Summary:     "Update own profile",
		Description: "Updates the phone and address. Only provided fields change.",
		Tags:        []string{"Profile"},
		Security:    auth.Bearer(),
	}, func(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
		user := auth.UserFromContext(ctx)
		if input.Body.Phone == nil && input.Body.Address == nil {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		p, err := svc.Update(ctx, user.UID, profilesvc.UpdateParams{
			Phone:   input.Body.Phone,
			Address: input.Body.Address,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &UpdateOutput{Body: toHTTPProfile(p)}, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return huma.Error409Conflict("profile already exists")
	default:
		applog.LogError(ctx, "profile store failed", err)
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: timeutil.Time{Time: p.CreatedAt},
		UpdatedAt: timeutil.Time{Time: p.UpdatedAt},
	}
}
