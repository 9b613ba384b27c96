package profile

import (
	"context"
	"sync"
	"time"

	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// MemoryStore implements Service in process for local runs and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
	now      func() time.Time
	err error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]Profile), now: time.Now}
}

// SetError makes every call fail with err until cleared with nil.
func (m *MemoryStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.err
	if err == nil {
		if _, exists := m.profiles[userID]; exists {
			err = ErrAlreadyExists
		}
	}
	if err != nil {
		applog.LogAuditEvent(ctx, "create", userID, "profile", userID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	p := newProfile(userID, params, m.now().UTC())
	m.profiles[userID] = p
	applog.LogAuditEvent(ctx, "create", userID, "profile", userID, applog.AuditSuccess, nil)
	return &p, nil
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.err
	p, ok := m.profiles[userID]
	if err == nil && !ok {
		err = ErrNotFound
	}
	if err != nil {
		applog.LogAuditEvent(ctx, "update", userID, "profile", userID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return nil, err
	}

	params.apply(&p)
	p.UpdatedAt = m.now().UTC()
	m.profiles[userID] = p
	applog.LogAuditEvent(ctx, "update", userID, "profile", userID, applog.AuditSuccess, nil)
	return &p, nil
}

// Compile-time interface check
var _ Service = (*MemoryStore)(nil)
