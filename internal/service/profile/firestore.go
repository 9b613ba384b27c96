package profile

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

const profilesCollection = "profiles"

type firestoreProfile struct {
	Name      string    `firestore:"name"`
	Email     string    `firestore:"email"`
	Phone     string    `firestore:"phone"`
	Address   string    `firestore:"address"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (fp firestoreProfile) profile(userID string) *Profile {
	return &Profile{
		ID:        userID,
		Name:      fp.Name,
		Email:     fp.Email,
		Phone:     fp.Phone,
		Address:   fp.Address,
		CreatedAt: fp.CreatedAt,
		UpdatedAt: fp.UpdatedAt,
	}
}

// FirestoreStore implements Service on the profiles collection, one
// document per user id.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Create registers a profile inside a transaction so a second registration
// fails with ErrAlreadyExists.
func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	docRef := s.client.Collection(profilesCollection).Doc(userID)
	p := newProfile(userID, params, time.Now().UTC())

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		return tx.Set(docRef, firestoreProfile{
			Name:      p.Name,
			Email:     p.Email,
			Phone:     p.Phone,
			Address:   p.Address,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "create", userID, "profile", userID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "create", userID, "profile", userID, applog.AuditSuccess, nil)
	return &p, nil
}

func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.profile(userID), nil
}

// Update applies params inside a transaction.
func (s *FirestoreStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	docRef := s.client.Collection(profilesCollection).Doc(userID)

	var result *Profile
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}

		p := fp.profile(userID)
		params.apply(p)
		p.UpdatedAt = time.Now().UTC()
		fp.Phone, fp.Address, fp.UpdatedAt = p.Phone, p.Address, p.UpdatedAt

		if err := tx.Set(docRef, fp); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		applog.LogAuditEvent(ctx, "update", userID, "profile", userID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}
	applog.LogAuditEvent(ctx, "update", userID, "profile", userID, applog.AuditSuccess, nil)
	return result, nil
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
