package favorite

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

const favoritesCollection = "favorites"

type firestoreFavorite struct {
	UserID     string    `firestore:"user_id"`
	PropertyID string    `firestore:"property_id"`
	CreatedAt  time.Time `firestore:"created_at"`
}

// FirestoreStore implements Service using Firestore. Documents are keyed by
// "{userID}_{propertyID}" so uniqueness holds without a query.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) List(ctx context.Context, userID string) ([]Favorite, error) {
	it := s.client.Collection(favoritesCollection).Where("user_id", "==", userID).Documents(ctx)
	defer it.Stop()

	var out []Favorite
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var ff firestoreFavorite
		if err := doc.DataTo(&ff); err != nil {
			return nil, err
		}
		out = append(out, Favorite(ff))
	}
	sortNewestFirst(out)
	return out, nil
}

// Toggle flips the favorite inside a transaction.
func (s *FirestoreStore) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	docRef := s.client.Collection(favoritesCollection).Doc(docID(userID, propertyID))

	var added bool
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			added = false
			return tx.Delete(docRef)
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		added = true
		return tx.Set(docRef, firestoreFavorite{
			UserID:     userID,
			PropertyID: propertyID,
			CreatedAt:  time.Now().UTC(),
		})
	})

	action := "delete"
	if added {
		action = "create"
	}
	if err != nil {
		applog.LogAuditEvent(ctx, action, userID, "favorite", propertyID, applog.AuditFailure,
			map[string]any{"error": "internal_error"})
		return false, err
	}
	applog.LogAuditEvent(ctx, action, userID, "favorite", propertyID, applog.AuditSuccess, nil)
	return added, nil
}

func (s *FirestoreStore) IsFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	_, err := s.client.Collection(favoritesCollection).Doc(docID(userID, propertyID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
