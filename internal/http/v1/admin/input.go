package admin

import "github.com/janisto/realty-portal/internal/platform/pagination"

// ListPropertiesInput for GET /admin/properties
type ListPropertiesInput struct {
	pagination.Params
}

// PropertyIDInput addresses one listing.
type PropertyIDInput struct {
	ID string `path:"id" maxLength:"128" doc:"Listing identifier" example:"gramado-house-1"`
}

// PropertyBody is the writable listing representation.
type PropertyBody struct {
	Title           string   `json:"title"                  minLength:"1" maxLength:"200"  doc:"Listing title"       example:"House with garden in Gramado"`
	Description     string   `json:"description,omitempty"  maxLength:"5000"               doc:"Long description"`
	TransactionType string   `json:"transactionType"        enum:"sale,rental"             doc:"Transaction type"    example:"sale"`
	PropertyType    string   `json:"propertyType"           enum:"apartment,house,townhouse,penthouse,land,commercial_room,condo_house" doc:"Property type" example:"house"`
	Status          string   `json:"status,omitempty"       enum:"available,sold,rented"   doc:"Availability; defaults to available"`
	City            string   `json:"city"                   minLength:"1" maxLength:"100"  doc:"City as displayed"   example:"Gramado"`
	Neighborhood    string   `json:"neighborhood,omitempty" maxLength:"100"                doc:"Neighborhood"`
	Street          string   `json:"street,omitempty"       maxLength:"200"                doc:"Street"`
	State           string   `json:"state"                  pattern:"^[A-Za-z]{2}$"        doc:"Two-letter state"    example:"RS"`
	PostalCode      string   `json:"postalCode,omitempty"   maxLength:"9"                  doc:"Postal code, with or without mask" example:"95670-000"`
	PriceMin        *float64 `json:"priceMin,omitempty"     minimum:"0"                    doc:"Lowest price"        example:"1850000"`
	PriceMax        *float64 `json:"priceMax,omitempty"     minimum:"0"                    doc:"Highest price"`
	Bedrooms        *int     `json:"bedrooms,omitempty"     minimum:"0"                    doc:"Bedrooms"`
	Bathrooms       *int     `json:"bathrooms,omitempty"    minimum:"0"                    doc:"Bathrooms"`
	ParkingSpots    *int     `json:"parkingSpots,omitempty" minimum:"0"                    doc:"Parking spots"`
	AreaM2          *float64 `json:"areaM2,omitempty"       minimum:"0"                    doc:"Area in square meters"`
	Images          []string `json:"images,omitempty"       maxItems:"30"                  doc:"Image URLs"`
	Active          *bool    `json:"active,omitempty"                                      doc:"Published in the public catalog; defaults to true"`
	Featured        bool     `json:"featured,omitempty"                                    doc:"Shown first in the default ordering"`
}

// CreatePropertyInput for POST /admin/properties
type CreatePropertyInput struct {
	Body PropertyBody
}

// PropertyPatch is a partial listing update. Omitted fields are unchanged.
type PropertyPatch struct {
	Title           *string   `json:"title,omitempty"           minLength:"1" maxLength:"200"`
	Description     *string   `json:"description,omitempty"     maxLength:"5000"`
	TransactionType *string   `json:"transactionType,omitempty" enum:"sale,rental"`
	PropertyType    *string   `json:"propertyType,omitempty"    enum:"apartment,house,townhouse,penthouse,land,commercial_room,condo_house"`
	Status          *string   `json:"status,omitempty"          enum:"available,sold,rented"`
	City            *string   `json:"city,omitempty"            minLength:"1" maxLength:"100"`
	Neighborhood    *string   `json:"neighborhood,omitempty"    maxLength:"100"`
	Street          *string   `json:"street,omitempty"          maxLength:"200"`
	State           *string   `json:"state,omitempty"           pattern:"^[A-Za-z]{2}$"`
	PostalCode      *string   `json:"postalCode,omitempty"      maxLength:"9"`
	PriceMin        *float64  `json:"priceMin,omitempty"        minimum:"0"`
	PriceMax        *float64  `json:"priceMax,omitempty"        minimum:"0"`
	Bedrooms        *int      `json:"bedrooms,omitempty"        minimum:"0"`
	Bathrooms       *int      `json:"bathrooms,omitempty"       minimum:"0"`
	ParkingSpots    *int      `json:"parkingSpots,omitempty"    minimum:"0"`
	AreaM2          *float64  `json:"areaM2,omitempty"          minimum:"0"`
	Images          *[]string `json:"images,omitempty"          maxItems:"30"`
	Active          *bool     `json:"active,omitempty"`
	Featured        *bool     `json:"featured,omitempty"`
}

// UpdatePropertyInput for PATCH /admin/properties/{id}
type UpdatePropertyInput struct {
	ID   string `path:"id" maxLength:"128" doc:"Listing identifier" example:"gramado-house-1"`
	Body PropertyPatch
}

// ListLeadsInput for GET /admin/leads
type ListLeadsInput struct {
	Limit int `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Maximum leads to return"`
}

// LeadIDInput addresses one lead.
type LeadIDInput struct {
	ID string `path:"id" maxLength:"64" doc:"Lead identifier"`
}
