package property

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/janisto/realty-portal/internal/catalog"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// MemoryStore implements Service in process. It backs local development
// without Firestore and handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	listings map[string]catalog.Listing
	now      func() time.Time
}

// NewMemoryStore creates a store holding the given listings.
func NewMemoryStore(seed ...catalog.Listing) *MemoryStore {
	m := &MemoryStore{
		listings: make(map[string]catalog.Listing, len(seed)),
		now:      time.Now,
	}
	for _, l := range seed {
		m.listings[l.ID] = cloneListing(l)
	}
	return m
}

func (m *MemoryStore) ListActive(_ context.Context) ([]catalog.Listing, error) {
	return m.collect(func(l catalog.Listing) bool { return l.Active }), nil
}

func (m *MemoryStore) List(_ context.Context) ([]catalog.Listing, error) {
	return m.collect(func(catalog.Listing) bool { return true }), nil
}

func (m *MemoryStore) collect(keep func(catalog.Listing) bool) []catalog.Listing {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]catalog.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		if keep(l) {
			out = append(out, cloneListing(l))
		}
	}
	sortCatalog(out)
	return out
}

func (m *MemoryStore) Get(_ context.Context, id string) (*catalog.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	l = cloneListing(l)
	return &l, nil
}

func (m *MemoryStore) Create(ctx context.Context, userID string, params CreateParams) (*catalog.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := newListing(uuid.NewString(), params)
	l.CreatedAt = m.now().UTC()
	l.UpdatedAt = l.CreatedAt
	m.listings[l.ID] = l

	applog.LogAuditEvent(ctx, "create", userID, "property", l.ID, applog.AuditSuccess, nil)
	out := cloneListing(l)
	return &out, nil
}

func (m *MemoryStore) Update(ctx context.Context, userID, id string, params UpdateParams) (*catalog.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.listings[id]
	if !ok {
		applog.LogAuditEvent(ctx, "update", userID, "property", id, applog.AuditFailure,
			map[string]any{"error": categorizeError(ErrNotFound)})
		return nil, ErrNotFound
	}
	params.apply(&l)
	l.UpdatedAt = m.now().UTC()
	m.listings[id] = l

	applog.LogAuditEvent(ctx, "update", userID, "property", id, applog.AuditSuccess, nil)
	out := cloneListing(l)
	return &out, nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.listings[id]; !ok {
		applog.LogAuditEvent(ctx, "delete", userID, "property", id, applog.AuditFailure,
			map[string]any{"error": categorizeError(ErrNotFound)})
		return ErrNotFound
	}
	delete(m.listings, id)

	applog.LogAuditEvent(ctx, "delete", userID, "property", id, applog.AuditSuccess, nil)
	return nil
}

func cloneListing(l catalog.Listing) catalog.Listing {
	l.Images = slices.Clone(l.Images)
	return l
}

// Compile-time interface check
var _ Service = (*MemoryStore)(nil)
