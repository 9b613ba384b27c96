package lead

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const leadsCollection = "leads"

type firestoreLead struct {
	Name         string    `firestore:"name"`
	Email        string    `firestore:"email"`
	Phone        string    `firestore:"phone"`
	Message      string    `firestore:"message"`
	PostalCode   string    `firestore:"postal_code"`
	Street       string    `firestore:"street"`
	Neighborhood string    `firestore:"neighborhood"`
	City         string    `firestore:"city"`
	State        string    `firestore:"state"`
	PropertyID   string    `firestore:"property_id"`
	Source       string    `firestore:"source"`
	CreatedAt    time.Time `firestore:"created_at"`
}

// FirestoreRepository stores leads in the "leads" collection keyed by lead ID.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a Firestore-backed repository.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

// Insert creates the lead document. Create fails if the ID is already taken.
func (r *FirestoreRepository) Insert(ctx context.Context, lead *Lead) error {
	_, err := r.client.Collection(leadsCollection).Doc(lead.ID).Create(ctx, firestoreLead{
		Name:         lead.Name,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Message:      lead.Message,
		PostalCode:   lead.PostalCode,
		Street:       lead.Street,
		Neighborhood: lead.Neighborhood,
		City:         lead.City,
		State:        lead.State,
		PropertyID:   lead.PropertyID,
		Source:       string(lead.Source),
		CreatedAt:    lead.CreatedAt,
	})
	return err
}

func (r *FirestoreRepository) Get(ctx context.Context, id string) (*Lead, error) {
	doc, err := r.client.Collection(leadsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return leadFromDoc(doc)
}

func (r *FirestoreRepository) List(ctx context.Context, limit int) ([]Lead, error) {
	q := r.client.Collection(leadsCollection).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	it := q.Documents(ctx)
	defer it.Stop()

	var out []Lead
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		lead, err := leadFromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *lead)
	}
	return out, nil
}

func leadFromDoc(doc *firestore.DocumentSnapshot) (*Lead, error) {
	var fl firestoreLead
	if err := doc.DataTo(&fl); err != nil {
		return nil, err
	}
	return &Lead{
		ID:           doc.Ref.ID,
		Name:         fl.Name,
		Email:        fl.Email,
		Phone:        fl.Phone,
		Message:      fl.Message,
		PostalCode:   fl.PostalCode,
		Street:       fl.Street,
		Neighborhood: fl.Neighborhood,
		City:         fl.City,
		State:        fl.State,
		PropertyID:   fl.PropertyID,
		Source:       Source(fl.Source),
		CreatedAt:    fl.CreatedAt,
	}, nil
}

// Compile-time interface check
var _ Repository = (*FirestoreRepository)(nil)
