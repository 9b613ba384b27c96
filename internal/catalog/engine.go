package catalog

import (
	"cmp"
	"slices"

	"github.com/janisto/realty-portal/internal/location"
)

// Apply runs the catalog pipeline over listings:
//
//  1. personalization, only when cfg.City is unset and a personalization city
//     is present; a zero-match result keeps the full set
//  2. transaction type, exact match
//  3. property type, exact match
//  4. manual city, case and diacritic insensitive substring (may yield zero)
//  5. stable sort by cfg.Sort
//
// The input slice is never modified.
func Apply(listings []Listing, cfg FilterConfig, personalization string) Result {
	working := slices.Clone(listings)
	res := Result{}

	if !isSet(cfg.City) {
		if city := location.Normalize(personalization); city != "" {
			matched := slices.DeleteFunc(slices.Clone(working), func(l Listing) bool {
				return !location.Matches(location.Normalize(l.City), city)
			})
			if len(matched) > 0 {
				working = matched
				res.PersonalizedCity = city
				res.Personalized = true
			}
		}
	}

	if isSet(cfg.TransactionType) {
		working = slices.DeleteFunc(working, func(l Listing) bool {
			return string(l.TransactionType) != cfg.TransactionType
		})
	}

	if isSet(cfg.PropertyType) {
		working = slices.DeleteFunc(working, func(l Listing) bool {
			return string(l.PropertyType) != cfg.PropertyType
		})
	}

	if isSet(cfg.City) {
		working = slices.DeleteFunc(working, func(l Listing) bool {
			return !location.Contains(l.City, cfg.City)
		})
	}

	sortListings(working, cfg.Sort)
	res.Listings = working
	return res
}

// sortListings orders in place. Every ordering is stable; "featured" is a
// partition that keeps the incoming relative order on both sides.
func sortListings(listings []Listing, key SortKey) {
	switch key {
	case SortNewest:
		slices.SortStableFunc(listings, func(a, b Listing) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortPriceAsc:
		slices.SortStableFunc(listings, func(a, b Listing) int {
			return cmp.Compare(priceOf(a), priceOf(b))
		})
	case SortPriceDesc:
		slices.SortStableFunc(listings, func(a, b Listing) int {
			return cmp.Compare(priceOf(b), priceOf(a))
		})
	default:
		slices.SortStableFunc(listings, func(a, b Listing) int {
			switch {
			case a.Featured == b.Featured:
				return 0
			case a.Featured:
				return -1
			default:
				return 1
			}
		})
	}
}

// priceOf treats a missing minimum price as 0, so unpriced listings sort
// first ascending and last descending.
func priceOf(l Listing) float64 {
	if l.PriceMin == nil {
		return 0
	}
	return *l.PriceMin
}
