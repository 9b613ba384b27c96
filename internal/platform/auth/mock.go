package auth

import (
	"context"
)

// MockVerifier returns a configured user or error.
type MockVerifier struct {
	User  *User
	Error error
}

func (m *MockVerifier) Verify(_ context.Context, _ string) (*User, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestUser returns a signed-in client.
func TestUser() *User {
	return &User{UID: "client-123", Email: "client@example.com"}
}

// TestAdmin returns a back-office user.
func TestAdmin() *User {
	return &User{UID: "admin-1", Email: "agent@example.com", Admin: true}
}

// Compile-time interface check
var _ Verifier = (*MockVerifier)(nil)
