// Package favorites lets signed-in clients save listings.
package favorites

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/realty-portal/internal/http/v1/properties"
	"github.com/janisto/realty-portal/internal/platform/auth"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/timeutil"
	favoritesvc "github.com/janisto/realty-portal/internal/service/favorite"
	propertysvc "github.com/janisto/realty-portal/internal/service/property"
)

// Register registers favorite endpoints.
func Register(api huma.API, favs favoritesvc.Service, listings propertysvc.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-favorites",
		Method:      http.MethodGet,
		Path:        "/me/favorites",
		Summary:     "List saved listings",
		Description: "Returns the active listings the authenticated user saved, newest first.",
		Tags:        []string{"Favorites"},
		Security:    auth.Bearer(),
	}, func(ctx context.Context, _ *struct{}) (*ListOutput, error) {
		user := auth.UserFromContext(ctx)

		saved, err := favs.List(ctx, user.UID)
		if err != nil {
			applog.LogError(ctx, "favorite list failed", err)
			return nil, huma.Error500InternalServerError("internal error")
		}

		items := make([]Favorite, 0, len(saved))
		for _, f := range saved {
			l, err := listings.Get(ctx, f.PropertyID)
			if errors.Is(err, propertysvc.ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, properties.MapServiceError(ctx, err)
			}
			// Unpublished listings stay saved but are hidden until reactivated.
			if !l.Active {
				continue
			}
			items = append(items, Favorite{
				Property:    properties.ToProperty(*l),
				FavoritedAt: timeutil.Time{Time: f.CreatedAt},
			})
		}
		return &ListOutput{Body: ListData{Items: items, Total: len(items)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "toggle-favorite",
		Method:      http.MethodPost,
		Path:        "/me/favorites/{propertyId}",
		Summary:     "Toggle a saved listing",
		Description: "Saves the listing when it is not saved yet and removes it otherwise.",
		Tags:        []string{"Favorites"},
		Security:    auth.Bearer(),
	}, func(ctx context.Context, input *ToggleInput) (*ToggleOutput, error) {
		user := auth.UserFromContext(ctx)

		l, err := listings.Get(ctx, input.PropertyID)
		if err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		if !l.Active {
			return nil, huma.Error404NotFound("property not found")
		}

		favorite, err := favs.Toggle(ctx, user.UID, input.PropertyID)
		if err != nil {
			applog.LogError(ctx, "favorite toggle failed", err, zap.String("propertyId", input.PropertyID))
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &ToggleOutput{Body: ToggleData{PropertyID: input.PropertyID, Favorite: favorite}}, nil
	})
}
