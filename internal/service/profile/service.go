// Package profile stores the contact details of signed-in clients.
package profile

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service errors
var (
	ErrNotFound      = errors.New("profile not found")
	ErrAlreadyExists = errors.New("profile already exists")
)

// Profile is keyed by the Firebase user id. Name is set at registration
// and only changes through support; Phone and Address are client-editable.
type Profile struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateParams for registering a profile.
type CreateParams struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// UpdateParams for the client-editable fields. Nil leaves a field as is;
// an empty string clears it.
type UpdateParams struct {
	Phone   *string
	Address *string
}

// Service defines profile operations.
//
// Implementations normalize input: email lowercased, every field trimmed.
type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Profile, error)
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error)
}

func newProfile(userID string, params CreateParams, now time.Time) Profile {
	return Profile{
		ID:        userID,
		Name:      strings.TrimSpace(params.Name),
		Email:     strings.ToLower(strings.TrimSpace(params.Email)),
		Phone:     strings.TrimSpace(params.Phone),
		Address:   strings.TrimSpace(params.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p UpdateParams) apply(dst *Profile) {
	if p.Phone != nil {
		dst.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		dst.Address = strings.TrimSpace(*p.Address)
	}
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal_error"
	}
}
