package properties

import (
	"slices"

	"github.com/janisto/realty-portal/internal/catalog"
	"github.com/janisto/realty-portal/internal/platform/timeutil"
	"github.com/janisto/realty-portal/internal/service/postal"
)

// Property is a listing as returned by the API.
type Property struct {
	ID              string        `json:"id"                     doc:"Listing identifier"            example:"gramado-house-1"`
	Title           string        `json:"title"                  doc:"Headline"                      example:"Stone house near Lago Negro"`
	Description     string        `json:"description,omitempty"  doc:"Free text description"`
	TransactionType string        `json:"transactionType"        doc:"How the listing is offered"    enum:"sale,rental"`
	PropertyType    string        `json:"propertyType"           doc:"Kind of property"              enum:"apartment,house,townhouse,penthouse,land,commercial_room,condo_house"`
	Status          string        `json:"status"                 doc:"Availability"                  enum:"available,sold,rented"`
	City            string        `json:"city"                   doc:"City"                          example:"Gramado"`
	Neighborhood    string        `json:"neighborhood,omitempty" doc:"Neighborhood"                  example:"Planalto"`
	Street          string        `json:"street,omitempty"       doc:"Street"`
	State           string        `json:"state,omitempty"        doc:"Two-letter state code"         example:"RS"`
	PostalCode      string        `json:"postalCode,omitempty"   doc:"Postal code, masked"           example:"95670-000"`
	PriceMin        *float64      `json:"priceMin,omitempty"     doc:"Asking price or lower bound"   example:"1850000"`
	PriceMax        *float64      `json:"priceMax,omitempty"     doc:"Upper bound of the price range"`
	Bedrooms        *int          `json:"bedrooms,omitempty"     doc:"Bedrooms"                      example:"4"`
	Bathrooms       *int          `json:"bathrooms,omitempty"    doc:"Bathrooms"                     example:"3"`
	ParkingSpots    *int          `json:"parkingSpots,omitempty" doc:"Parking spots"                 example:"2"`
	AreaM2          *float64      `json:"areaM2,omitempty"       doc:"Area in square meters"         example:"280"`
	Images          []string      `json:"images"                 doc:"Image URLs, cover first"`
	Featured        bool          `json:"featured"               doc:"Highlighted listing"`
	Active          bool          `json:"active"                 doc:"Visible in the public catalog"`
	CreatedAt       timeutil.Time `json:"createdAt"              doc:"Creation timestamp"            example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt       timeutil.Time `json:"updatedAt"              doc:"Last update timestamp"         example:"2024-01-15T10:30:00.000Z"`
}

// ToProperty converts a catalog listing to its API form.
func ToProperty(l catalog.Listing) Property {
	images := slices.Clone(l.Images)
	if images == nil {
		images = []string{}
	}
	return Property{
		ID:              l.ID,
		Title:           l.Title,
		Description:     l.Description,
		TransactionType: string(l.TransactionType),
		PropertyType:    string(l.PropertyType),
		Status:          string(l.Status),
		City:            l.City,
		Neighborhood:    l.Neighborhood,
		Street:          l.Street,
		State:           l.State,
		PostalCode:      postal.Mask(l.PostalCode),
		PriceMin:        l.PriceMin,
		PriceMax:        l.PriceMax,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		ParkingSpots:    l.ParkingSpots,
		AreaM2:          l.AreaM2,
		Images:          images,
		Featured:        l.Featured,
		Active:          l.Active,
		CreatedAt:       timeutil.Time{Time: l.CreatedAt},
		UpdatedAt:       timeutil.Time{Time: l.UpdatedAt},
	}
}

// ToProperties converts listings in order.
func ToProperties(listings []catalog.Listing) []Property {
	out := make([]Property, len(listings))
	for i, l := range listings {
		out[i] = ToProperty(l)
	}
	return out
}
