// Package catalog filters, personalizes and orders property listings.
//
// Apply is a pure function of (listings, FilterConfig, personalization city):
// it never mutates its input and holds no state, so it is safe to call
// concurrently.
package catalog

import (
	"strings"
	"time"
)

// All is the sentinel for a filter that deliberately includes everything.
const All = "all"

// TransactionType is how a listing is offered.
type TransactionType string

const (
	TransactionSale   TransactionType = "sale"
	TransactionRental TransactionType = "rental"
)

// PropertyType is the kind of property a listing describes.
type PropertyType string

const (
	PropertyApartment      PropertyType = "apartment"
	PropertyHouse          PropertyType = "house"
	PropertyTownhouse      PropertyType = "townhouse"
	PropertyPenthouse      PropertyType = "penthouse"
	PropertyLand           PropertyType = "land"
	PropertyCommercialRoom PropertyType = "commercial_room"
	PropertyCondoHouse     PropertyType = "condo_house"
)

// PropertyTypes lists every valid PropertyType.
var PropertyTypes = []PropertyType{
	PropertyApartment,
	PropertyHouse,
	PropertyTownhouse,
	PropertyPenthouse,
	PropertyLand,
	PropertyCommercialRoom,
	PropertyCondoHouse,
}

// Status is the back-office availability of a listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
)

// SortKey selects the output ordering.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
)

// Listing is a single property record. Optional numeric fields are nil when
// unknown.
type Listing struct {
	ID              string
	Title           string
	Description     string
	TransactionType TransactionType
	PropertyType    PropertyType
	Status          Status
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
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FilterConfig is the visitor's explicit filter selection. Every filter field
// uses All (or "") to mean "no restriction".
type FilterConfig struct {
	TransactionType string
	PropertyType    string
	City            string
	Sort            SortKey
}

// DefaultFilter returns a configuration that includes everything, ordered by
// featured first.
func DefaultFilter() FilterConfig {
	return FilterConfig{
		TransactionType: All,
		PropertyType:    All,
		City:            All,
		Sort:            SortFeatured,
	}
}

// Result is the full filtered and ordered listing set. It is never paginated.
type Result struct {
	Listings []Listing
	// PersonalizedCity is the personalization city that narrowed the set, if
	// any.
	PersonalizedCity string
	// Personalized is true when personalization narrowed the set.
	Personalized bool
}

// isSet treats blank values like "" so a stray space never counts as a
// selection.
func isSet(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != All
}
