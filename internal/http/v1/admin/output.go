package admin

import (
	"github.com/janisto/realty-portal/internal/http/v1/leads"
	"github.com/janisto/realty-portal/internal/http/v1/properties"
)

// PropertyListData is one page of the full catalog.
type PropertyListData struct {
	Items []properties.Property `json:"items" doc:"Listings on this page, active or not"`
	Total int                   `json:"total" doc:"Number of listings"`
}

// ListPropertiesOutput for GET /admin/properties
type ListPropertiesOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body PropertyListData
}

// StatsData summarizes the catalog for the dashboard.
type StatsData struct {
	Total    int `json:"total"    doc:"Number of listings"                   example:"5"`
	Active   int `json:"active"   doc:"Listings shown in the public catalog"  example:"4"`
	Inactive int `json:"inactive" doc:"Unpublished listings, including sold" example:"1"`
}

// StatsOutput for GET /admin/stats
type StatsOutput struct {
	Body StatsData
}

// PropertyOutput returns one listing.
type PropertyOutput struct {
	Body properties.Property
}

// CreatePropertyOutput for POST /admin/properties (201 Created)
type CreatePropertyOutput struct {
	Location string `header:"Location" doc:"URL of the created listing"`
	Body     properties.Property
}

// LeadListData is the most recent leads.
type LeadListData struct {
	Items []leads.Lead `json:"items" doc:"Leads, newest first"`
	Total int          `json:"total" doc:"Number of leads returned"`
}

// ListLeadsOutput for GET /admin/leads
type ListLeadsOutput struct {
	Body LeadListData
}

// LeadOutput returns one lead.
type LeadOutput struct {
	Body leads.Lead
}
