package favorites

import (
	"github.com/janisto/realty-portal/internal/http/v1/properties"
	"github.com/janisto/realty-portal/internal/platform/timeutil"
)

// Favorite is a saved listing.
type Favorite struct {
	Property    properties.Property `json:"property"    doc:"Saved listing"`
	FavoritedAt timeutil.Time       `json:"favoritedAt" doc:"When the listing was saved" example:"2024-05-01T12:00:00.000Z"`
}

// ToggleData is the favorite state after a toggle.
type ToggleData struct {
	PropertyID string `json:"propertyId" doc:"Listing identifier"                      example:"gramado-house-1"`
	Favorite   bool   `json:"favorite"   doc:"Whether the listing is saved afterwards"`
}
