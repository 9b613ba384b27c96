// Package favorite stores the listings a signed-in client has saved.
package favorite

import (
	"cmp"
	"context"
	"slices"
	"time"
)

// Favorite marks a listing as saved by a user. There is at most one per
// (UserID, PropertyID).
type Favorite struct {
	UserID     string
	PropertyID string
	CreatedAt  time.Time
}

// Service defines favorite operations.
type Service interface {
	// List returns the user's favorites, newest first.
	List(ctx context.Context, userID string) ([]Favorite, error)
	// Toggle adds the favorite when absent and removes it when present. It
	// reports whether the listing is a favorite afterwards.
	Toggle(ctx context.Context, userID, propertyID string) (bool, error)
	IsFavorite(ctx context.Context, userID, propertyID string) (bool, error)
}

func docID(userID, propertyID string) string {
	return userID + "_" + propertyID
}

func sortNewestFirst(favs []Favorite) {
	slices.SortFunc(favs, func(a, b Favorite) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.PropertyID, b.PropertyID)
	})
}
