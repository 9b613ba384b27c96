// Package property stores the listing catalog.
package property

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/janisto/realty-portal/internal/catalog"
)

// Service errors
var (
	ErrNotFound = errors.New("property not found")
)

// CreateParams for creating a listing. Status defaults to available.
type CreateParams struct {
	Title           string
	Description     string
	TransactionType catalog.TransactionType
	PropertyType    catalog.PropertyType
	Status          catalog.Status
	City            string
	Neighborhood    string
	Street          string
	State           string
	PostalCode      string
	PriceMin        *float64
	PriceMax        *float64
	Bedrooms        *int
	Bathrooms       *int
	ParkingSpots    *int
	AreaM2          *float64
	Images          []string
	Active          bool
	Featured        bool
}

// UpdateParams for a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	Title           *string
	Description     *string
	TransactionType *catalog.TransactionType
	PropertyType    *catalog.PropertyType
	Status          *catalog.Status
	City            *string
	Neighborhood    *string
	Street          *string
	State           *string
	PostalCode      *string
	PriceMin        *float64
	PriceMax        *float64
	Bedrooms        *int
	Bathrooms       *int
	ParkingSpots    *int
	AreaM2          *float64
	Images          *[]string
	Active          *bool
	Featured        *bool
}

// Service defines catalog storage operations. List methods return listings
// ordered featured first, then newest first.
type Service interface {
	// ListActive returns the public catalog snapshot.
	ListActive(ctx context.Context) ([]catalog.Listing, error)
	// List returns every listing, active or not.
	List(ctx context.Context) ([]catalog.Listing, error)
	Get(ctx context.Context, id string) (*catalog.Listing, error)
	Create(ctx context.Context, userID string, params CreateParams) (*catalog.Listing, error)
	Update(ctx context.Context, userID, id string, params UpdateParams) (*catalog.Listing, error)
	Delete(ctx context.Context, userID, id string) error
}

// newListing builds a listing from params.
func newListing(id string, params CreateParams) catalog.Listing {
	status := params.Status
	if status == "" {
		status = catalog.StatusAvailable
	}
	return catalog.Listing{
		ID:              id,
		Title:           params.Title,
		Description:     params.Description,
		TransactionType: params.TransactionType,
		PropertyType:    params.PropertyType,
		Status:          status,
		City:            params.City,
		Neighborhood:    params.Neighborhood,
		Street:          params.Street,
		State:           params.State,
		PostalCode:      params.PostalCode,
		PriceMin:        params.PriceMin,
		PriceMax:        params.PriceMax,
		Bedrooms:        params.Bedrooms,
		Bathrooms:       params.Bathrooms,
		ParkingSpots:    params.ParkingSpots,
		AreaM2:          params.AreaM2,
		Images:          slices.Clone(params.Images),
		Active:          params.Active,
		Featured:        params.Featured,
	}
}

// apply copies the set fields of params onto l.
func (params UpdateParams) apply(l *catalog.Listing) {
	setIf(&l.Title, params.Title)
	setIf(&l.Description, params.Description)
	setIf(&l.TransactionType, params.TransactionType)
	setIf(&l.PropertyType, params.PropertyType)
	setIf(&l.Status, params.Status)
	setIf(&l.City, params.City)
	setIf(&l.Neighborhood, params.Neighborhood)
	setIf(&l.Street, params.Street)
	setIf(&l.State, params.State)
	setIf(&l.PostalCode, params.PostalCode)
	setIf(&l.Active, params.Active)
	setIf(&l.Featured, params.Featured)
	if params.PriceMin != nil {
		l.PriceMin = params.PriceMin
	}
	if params.PriceMax != nil {
		l.PriceMax = params.PriceMax
	}
	if params.Bedrooms != nil {
		l.Bedrooms = params.Bedrooms
	}
	if params.Bathrooms != nil {
		l.Bathrooms = params.Bathrooms
	}
	if params.ParkingSpots != nil {
		l.ParkingSpots = params.ParkingSpots
	}
	if params.AreaM2 != nil {
		l.AreaM2 = params.AreaM2
	}
	if params.Images != nil {
		l.Images = slices.Clone(*params.Images)
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// sortCatalog orders listings featured first, then by creation time
// descending, then by ID for a stable tie-break.
func sortCatalog(listings []catalog.Listing) {
	slices.SortFunc(listings, func(a, b catalog.Listing) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "not_found"
	}
	return "internal_error"
}
