package properties

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/janisto/realty-portal/internal/catalog"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/metrics"
	"github.com/janisto/realty-portal/internal/platform/middleware"
	"github.com/janisto/realty-portal/internal/platform/pagination"
	propertysvc "github.com/janisto/realty-portal/internal/service/property"
)

// CursorKind tags catalog cursors.
const CursorKind = "property"

// CityLookup returns the visitor's personalization city.
type CityLookup interface {
	Get(ctx context.Context, visitorID string) (string, bool)
}

// Register registers the public catalog endpoints.
func Register(api huma.API, svc propertysvc.Service, cities CityLookup, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-properties",
		Method:      http.MethodGet,
		Path:        "/properties",
		Summary:     "List properties",
		Description: "Returns active listings filtered and ordered as requested. Without a city filter the " +
			"catalog is narrowed to the visitor's last known city when it has matches. " +
			"Use the cursor from the Link header to navigate between pages.",
		Tags: []string{"Properties"},
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		cursor, err := pagination.Decode(input.Cursor, CursorKind)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor")
		}

		listings, err := svc.ListActive(ctx)
		if err != nil {
			applog.LogError(ctx, "catalog load failed", err)
			return nil, huma.Error500InternalServerError("internal error")
		}

		var city string
		if cities != nil {
			city, _ = cities.Get(ctx, middleware.VisitorID(ctx))
		}
		result := catalog.Apply(listings, filterConfig(input), city)
		metrics.CatalogServed(result.Personalized)

		page := pagination.Paginate(result.Listings, pagination.Request{
			Cursor: cursor,
			Limit:  input.PageSize(),
			Path:   prefix + "/properties",
			Query:  filterQuery(input),
		}, func(l catalog.Listing) string { return l.ID })

		applog.LogInfo(ctx, "catalog served",
			zap.Int("total", page.Total),
			zap.Bool("personalized", result.Personalized),
		)

		return &ListOutput{
			Link: page.Link,
			Body: ListData{
				Items:            ToProperties(page.Items),
				Total:            page.Total,
				Personalized:     result.Personalized,
				PersonalizedCity: result.PersonalizedCity,
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-property",
		Method:      http.MethodGet,
		Path:        "/properties/{id}",
		Summary:     "Get a property",
		Description: "Returns one active listing.",
		Tags:        []string{"Properties"},
	}, func(ctx context.Context, input *GetInput) (*GetOutput, error) {
		l, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, MapServiceError(ctx, err)
		}
		if !l.Active {
			return nil, huma.Error404NotFound("property not found")
		}
		return &GetOutput{Body: ToProperty(*l)}, nil
	})
}

func filterConfig(input *ListInput) catalog.FilterConfig {
	cfg := catalog.DefaultFilter()
	if input.TransactionType != "" {
		cfg.TransactionType = input.TransactionType
	}
	if input.PropertyType != "" {
		cfg.PropertyType = input.PropertyType
	}
	if input.City != "" {
		cfg.City = input.City
	}
	if input.Sort != "" {
		cfg.Sort = catalog.SortKey(input.Sort)
	}
	return cfg
}

// filterQuery keeps non-default filters in the pagination links.
func filterQuery(input *ListInput) url.Values {
	q := url.Values{}
	if input.TransactionType != "" && input.TransactionType != catalog.All {
		q.Set("transactionType", input.TransactionType)
	}
	if input.PropertyType != "" && input.PropertyType != catalog.All {
		q.Set("propertyType", input.PropertyType)
	}
	if input.City != "" {
		q.Set("city", input.City)
	}
	if input.Sort != "" && input.Sort != string(catalog.SortFeatured) {
		q.Set("sort", input.Sort)
	}
	return q
}

// MapServiceError converts property store errors to HTTP errors.
func MapServiceError(ctx context.Context, err error) error {
	if errors.Is(err, propertysvc.ErrNotFound) {
		return huma.Error404NotFound("property not found")
	}
	applog.LogError(ctx, "property store failed", err)
	return huma.Error500InternalServerError("internal error")
}
