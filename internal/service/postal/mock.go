package postal

import (
	"context"
	"sync"
)

// MockService resolves postal codes from an in-memory table.
type MockService struct {
	mu        sync.RWMutex
	addresses map[string]Address
	err       error
	calls     int
}

// NewMockService creates a mock seeded with a few well-known codes.
func NewMockService() *MockService {
	m := &MockService{addresses: make(map[string]Address)}
	m.Add(Address{PostalCode: "01310100", Street: "Avenida Paulista", Neighborhood: "Bela Vista", City: "São Paulo", State: "SP"})
	m.Add(Address{PostalCode: "95670000", City: "Gramado", State: "RS"})
	m.Add(Address{PostalCode: "90010000", Street: "Rua dos Andradas", Neighborhood: "Centro Histórico", City: "Porto Alegre", State: "RS"})
	return m
}

// Add registers an address under its postal code.
func (m *MockService) Add(addr Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addresses[Digits(addr.PostalCode)] = addr
}

// SetError makes every valid-format lookup fail with err.
func (m *MockService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many lookups reached the directory stage.
func (m *MockService) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

func (m *MockService) Lookup(_ context.Context, raw string) (*Address, error) {
	code, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.err != nil {
		return nil, m.err
	}
	addr, ok := m.addresses[code]
	if !ok {
		return nil, &LookupError{Kind: LookupErrorKindNotFound, Code: code, cause: ErrNotFound}
	}
	addr.PostalCode = code
	return &addr, nil
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
