package lead

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository keeps leads in process. It backs local development and
// tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	leads []Lead
	err   error
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// SetError makes every subsequent call fail with err. Pass nil to reset.
func (m *MemoryRepository) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryRepository) Insert(_ context.Context, lead *Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.leads = append(m.leads, *lead)
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, id string) (*Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	i := slices.IndexFunc(m.leads, func(l Lead) bool { return l.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	l := m.leads[i]
	return &l, nil
}

func (m *MemoryRepository) List(_ context.Context, limit int) ([]Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, m.err
	}
	out := slices.Clone(m.leads)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Compile-time interface check
var _ Repository = (*MemoryRepository)(nil)
