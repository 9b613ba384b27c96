package favorite

import (
	"context"
	"sync"
	"time"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// MemoryStore implements Service in process.
type MemoryStore struct {
	mu        sync.RWMutex
	favorites map[string]Favorite
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{favorites: make(map[string]Favorite)}
}

func (m *MemoryStore) List(_ context.Context, userID string) ([]Favorite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []Favorite
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *MemoryStore) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := docID(userID, propertyID)
	if _, ok := m.favorites[id]; ok {
		delete(m.favorites, id)
		applog.LogAuditEvent(ctx, "delete", userID, "favorite", propertyID, applog.AuditSuccess, nil)
		return false, nil
	}
	m.favorites[id] = Favorite{UserID: userID, PropertyID: propertyID, CreatedAt: time.Now().UTC()}
	applog.LogAuditEvent(ctx, "create", userID, "favorite", propertyID, applog.AuditSuccess, nil)
	return true, nil
}

func (m *MemoryStore) IsFavorite(_ context.Context, userID, propertyID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.favorites[docID(userID, propertyID)]
	return ok, nil
}

// Compile-time interface check
var _ Service = (*MemoryStore)(nil)
