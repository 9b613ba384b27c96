// Package admin is the back-office API for agents: catalog maintenance and
// lead review. Every operation requires an admin token.
package admin

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/realty-portal/internal/catalog"
	"github.com/janisto/realty-portal/internal/http/v1/leads"
	"github.com/janisto/realty-portal/internal/http/v1/properties"
	"github.com/janisto/realty-portal/internal/platform/auth"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
	"github.com/janisto/realty-portal/internal/platform/pagination"
	"github.com/janisto/realty-portal/internal/service/lead"
	propertysvc "github.com/janisto/realty-portal/internal/service/property"
)

// CursorKind tags back-office catalog cursors.
const CursorKind = "admin-property"

// LeadReader is the read side of the lead service.
type LeadReader interface {
	Recent(ctx context.Context, limit int) ([]lead.Lead, error)
	Get(ctx context.Context, id string) (*lead.Lead, error)
}

// Register registers the back-office endpoints.
func Register(api huma.API, listings propertysvc.Service, leadReader LeadReader, prefix string) {
	registerProperties(api, listings, prefix)
	registerLeads(api, leadReader)
}

func registerProperties(api huma.API, svc propertysvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-properties",
		Method:      http.MethodGet,
		Path:        "/admin/properties",
		Summary:     "List all properties",
		Description: "Returns every listing, including inactive ones, featured first then newest.",
		Tags:        []string{"Admin"},
		Security:    auth.Admin(),
	}, func(ctx context.Context, input *ListPropertiesInput) (*ListPropertiesOutput, error) {
		cursor, err := pagination.Decode(input.Cursor, CursorKind)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor")
		}
		all, err := svc.List(ctx)
		if err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		page := pagination.Paginate(all, pagination.Request{
			Cursor: cursor,
			Limit:  input.PageSize(),
			Path:   prefix + "/admin/properties",
		}, func(l catalog.Listing) string { return l.ID })

		return &ListPropertiesOutput{
			Link: page.Link,
			Body: PropertyListData{Items: properties.ToProperties(page.Items), Total: page.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-property-stats",
		Method:      http.MethodGet,
		Path:        "/admin/stats",
		Summary:     "Catalog summary",
		Description: "Counts every listing and splits the total into active and inactive.",
		Tags:        []string{"Admin"},
		Security:    auth.Admin(),
	}, func(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
		all, err := svc.List(ctx)
		if err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		return &StatsOutput{Body: propertyStats(all)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-get-property",
		Method:      http.MethodGet,
		Path:        "/admin/properties/{id}",
		Summary:     "Get a property",
		Description: "Returns one listing, active or not.",
		Tags:        []string{"Admin"},
		Security:    auth.Admin(),
	}, func(ctx context.Context, input *PropertyIDInput) (*PropertyOutput, error) {
		l, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		return &PropertyOutput{Body: properties.ToProperty(*l)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "admin-create-property",
		Method:        http.MethodPost,
		Path:          "/admin/properties",
		Summary:       "Create a property",
		Description:   "Adds a listing to the catalog. Listings are published unless active is false.",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
		Security:      auth.Admin(),
	}, func(ctx context.Context, input *CreatePropertyInput) (*CreatePropertyOutput, error) {
		user := auth.UserFromContext(ctx)

		params, err := createParams(input.Body)
		if err != nil {
			return nil, err
		}
		l, err := svc.Create(ctx, user.UID, params)
		if err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		return &CreatePropertyOutput{
			Location: prefix + "/admin/properties/" + l.ID,
			Body:     properties.ToProperty(*l),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-update-property",
		Method:      http.MethodPatch,
		Path:        "/admin/properties/{id}",
		Summary:     "Update a property",
		Description: "Changes the given fields of a listing. At least one field is required.",
		Tags:        []string{"Admin"},
		Security:    auth.Admin(),
	}, func(ctx context.Context, input *UpdatePropertyInput) (*PropertyOutput, error) {
		user := auth.UserFromContext(ctx)

		current, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		params, err := updateParams(input.Body, current)
		if err != nil {
			return nil, err
		}
		l, err := svc.Update(ctx, user.UID, input.ID, params)
		if err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		return &PropertyOutput{Body: properties.ToProperty(*l)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "admin-delete-property",
		Method:        http.MethodDelete,
		Path:          "/admin/properties/{id}",
		Summary:       "Delete a property",
		Description:   "Removes a listing permanently. Saved favorites of it are hidden from their owners.",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusNoContent,
		Security:      auth.Admin(),
	}, func(ctx context.Context, input *PropertyIDInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID, input.ID); err != nil {
			return nil, properties.MapServiceError(ctx, err)
		}
		return nil, nil
	})
}

func registerLeads(api huma.API, svc LeadReader) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-list-leads",
		Method:      http.MethodGet,
		Path:        "/admin/leads",
		Summary:     "List recent leads",
		Description: "Returns the most recent leads, newest first.",
		Tags:        []string{"Admin"},
		Security:    auth.Admin(),
	}, func(ctx context.Context, input *ListLeadsInput) (*ListLeadsOutput, error) {
		recent, err := svc.Recent(ctx, input.Limit)
		if err != nil {
			return nil, leads.MapServiceError(ctx, err)
		}
		items := make([]leads.Lead, 0, len(recent))
		for i := range recent {
			items = append(items, leads.ToLead(&recent[i]))
		}
		applog.LogAuditEvent(ctx, "list", auth.UserFromContext(ctx).UID, "lead", "", applog.AuditSuccess,
			map[string]any{"count": len(items)})
		return &ListLeadsOutput{Body: LeadListData{Items: items, Total: len(items)}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-get-lead",
		Method:      http.MethodGet,
		Path:        "/admin/leads/{id}",
		Summary:     "Get a lead",
		Description: "Returns one lead.",
		Tags:        []string{"Admin"},
		Security:    auth.Admin(),
	}, func(ctx context.Context, input *LeadIDInput) (*LeadOutput, error) {
		l, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, leads.MapServiceError(ctx, err)
		}
		applog.LogAuditEvent(ctx, "read", auth.UserFromContext(ctx).UID, "lead", l.ID, applog.AuditSuccess, nil)
		return &LeadOutput{Body: leads.ToLead(l)}, nil
	})
}

func propertyStats(all []catalog.Listing) StatsData {
	stats := StatsData{Total: len(all)}
	for _, l := range all {
		if l.Active {
			stats.Active++
		}
	}
	stats.Inactive = stats.Total - stats.Active
	return stats
}
