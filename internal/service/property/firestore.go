package property

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/janisto/realty-portal/internal/catalog"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

const propertiesCollection = "properties"

// firestoreListing maps to Firestore document structure.
type firestoreListing struct {
	Title           string    `firestore:"title"`
	Description     string    `firestore:"description"`
	TransactionType string    `firestore:"transaction_type"`
	PropertyType    string    `firestore:"property_type"`
	Status          string    `firestore:"status"`
	City            string    `firestore:"city"`
	Neighborhood    string    `firestore:"neighborhood"`
	Street          string    `firestore:"street"`
	State           string    `firestore:"state"`
	PostalCode      string    `firestore:"postal_code"`
	PriceMin        *float64  `firestore:"price_min"`
	PriceMax        *float64  `firestore:"price_max"`
	Bedrooms        *int      `firestore:"bedrooms"`
	Bathrooms       *int      `firestore:"bathrooms"`
	ParkingSpots    *int      `firestore:"parking_spots"`
	AreaM2          *float64  `firestore:"area_m2"`
	Images          []string  `firestore:"images"`
	Active          bool      `firestore:"active"`
	Featured        bool      `firestore:"featured"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

func toFirestore(l catalog.Listing) firestoreListing {
	return firestoreListing{
		Title:           l.Title,
		Description:     l.Description,
		TransactionType: string(l.TransactionType),
		PropertyType:    string(l.PropertyType),
		Status:          string(l.Status),
		City:            l.City,
		Neighborhood:    l.Neighborhood,
		Street:          l.Street,
		State:           l.State,
		PostalCode:      l.PostalCode,
		PriceMin:        l.PriceMin,
		PriceMax:        l.PriceMax,
		Bedrooms:        l.Bedrooms,
		Bathrooms:       l.Bathrooms,
		ParkingSpots:    l.ParkingSpots,
		AreaM2:          l.AreaM2,
		Images:          l.Images,
		Active:          l.Active,
		Featured:        l.Featured,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func (f firestoreListing) listing(id string) catalog.Listing {
	return catalog.Listing{
		ID:              id,
		Title:           f.Title,
		Description:     f.Description,
		TransactionType: catalog.TransactionType(f.TransactionType),
		PropertyType:    catalog.PropertyType(f.PropertyType),
		Status:          catalog.Status(f.Status),
		City:            f.City,
		Neighborhood:    f.Neighborhood,
		Street:          f.Street,
		State:           f.State,
		PostalCode:      f.PostalCode,
		PriceMin:        f.PriceMin,
		PriceMax:        f.PriceMax,
		Bedrooms:        f.Bedrooms,
		Bathrooms:       f.Bathrooms,
		ParkingSpots:    f.ParkingSpots,
		AreaM2:          f.AreaM2,
		Images:          f.Images,
		Active:          f.Active,
		Featured:        f.Featured,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// ListActive queries active listings. Ordering happens in memory so no
// composite index is required.
func (s *FirestoreStore) ListActive(ctx context.Context) ([]catalog.Listing, error) {
	return s.query(ctx, s.client.Collection(propertiesCollection).Where("active", "==", true))
}

func (s *FirestoreStore) List(ctx context.Context) ([]catalog.Listing, error) {
	return s.query(ctx, s.client.Collection(propertiesCollection).Query)
}

func (s *FirestoreStore) query(ctx context.Context, q firestore.Query) ([]catalog.Listing, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []catalog.Listing
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fl firestoreListing
		if err := doc.DataTo(&fl); err != nil {
			return nil, err
		}
		out = append(out, fl.listing(doc.Ref.ID))
	}
	sortCatalog(out)
	return out, nil
}

// Get retrieves a listing by ID.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*catalog.Listing, error) {
	doc, err := s.client.Collection(propertiesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fl firestoreListing
	if err := doc.DataTo(&fl); err != nil {
		return nil, err
	}
	l := fl.listing(id)
	return &l, nil
}

// Create stores a new listing under a generated ID.
func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*catalog.Listing, error) {
	l := newListing(uuid.NewString(), params)
	l.CreatedAt = time.Now().UTC()
	l.UpdatedAt = l.CreatedAt

	if _, err := s.client.Collection(propertiesCollection).Doc(l.ID).Create(ctx, toFirestore(l)); err != nil {
		applog.LogAuditEvent(ctx, "create", userID, "property", l.ID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "create", userID, "property", l.ID, applog.AuditSuccess, nil)
	return &l, nil
}

// Update applies a partial update inside a transaction.
func (s *FirestoreStore) Update(ctx context.Context, userID, id string, params UpdateParams) (*catalog.Listing, error) {
	docRef := s.client.Collection(propertiesCollection).Doc(id)

	var result *catalog.Listing

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fl firestoreListing
		if err := doc.DataTo(&fl); err != nil {
			return err
		}

		l := fl.listing(id)
		params.apply(&l)
		l.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, toFirestore(l)); err != nil {
			return err
		}
		result = &l
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", userID, "property", id, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	applog.LogAuditEvent(ctx, "update", userID, "property", id, applog.AuditSuccess, nil)
	return result, nil
}

// Delete removes a listing using a transaction to ensure it exists.
func (s *FirestoreStore) Delete(ctx context.Context, userID, id string) error {
	docRef := s.client.Collection(propertiesCollection).Doc(id)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "delete", userID, "property", id, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return err
	}

	applog.LogAuditEvent(ctx, "delete", userID, "property", id, applog.AuditSuccess, nil)
	return nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
