package routes

import (
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/realty-portal/internal/http/v1/admin"
	"github.com/janisto/realty-portal/internal/http/v1/favorites"
	"github.com/janisto/realty-portal/internal/http/v1/leads"
	"github.com/janisto/realty-portal/internal/http/v1/personalization"
	"github.com/janisto/realty-portal/internal/http/v1/postalcodes"
	"github.com/janisto/realty-portal/internal/http/v1/profile"
	"github.com/janisto/realty-portal/internal/http/v1/properties"
	"github.com/janisto/realty-portal/internal/platform/auth"
	favoritesvc "github.com/janisto/realty-portal/internal/service/favorite"
	leadsvc "github.com/janisto/realty-portal/internal/service/lead"
	personalizationsvc "github.com/janisto/realty-portal/internal/service/personalization"
	"github.com/janisto/realty-portal/internal/service/postal"
	profilesvc "github.com/janisto/realty-portal/internal/service/profile"
	propertysvc "github.com/janisto/realty-portal/internal/service/property"
)

// Services are the backends the API routes call into.
type Services struct {
	Properties      propertysvc.Service
	Favorites       favoritesvc.Service
	Profiles        profilesvc.Service
	Leads           *leadsvc.Service
	Personalization *personalizationsvc.Store
	Postal          postal.Service
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, svc Services) {
	prefix := apiPrefix(api)

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	postalcodes.Register(api, svc.Postal)
	properties.Register(api, svc.Properties, svc.Personalization, prefix)
	leads.Register(api, svc.Leads, prefix)
	personalization.Register(api, svc.Personalization)
	favorites.Register(api, svc.Favorites, svc.Properties)
	profile.Register(api, svc.Profiles, prefix)
	admin.Register(api, svc.Properties, svc.Leads, prefix)
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
