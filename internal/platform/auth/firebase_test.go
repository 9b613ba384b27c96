package auth

import (
	"context"
	"errors"
	"testing"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc", "abc", nil},
		{"bearer abc", "abc", nil},
		{"BEARER  abc.def.ghi ", "abc.def.ghi", nil},
		{"", "", ErrNoToken},
		{"abc", "", ErrInvalidToken},
		{"Basic dXNlcjpwYXNz", "", ErrInvalidToken},
		{"Bearer", "", ErrInvalidToken},
		{"Bearer a b", "", ErrInvalidToken},
		{"   ", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserFromClaims(t *testing.T) {
	u := userFromClaims("uid-1", map[string]any{"email": "a@example.com", AdminClaim: true})
	if u.UID != "uid-1" || u.Email != "a@example.com" || !u.Admin {
		t.Fatalf("unexpected user %+v", u)
	}

	u = userFromClaims("uid-2", map[string]any{AdminClaim: "true"})
	if u.Admin {
		t.Fatal("non-boolean admin claim must not grant access")
	}
}

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier().Add("secret", TestAdmin()).Add("", TestUser())

	u, err := v.Verify(context.Background(), "secret")
	if err != nil || !u.Admin {
		t.Fatalf("expected admin, got %+v (%v)", u, err)
	}
	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token must be rejected, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "guess"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestMockVerifier(t *testing.T) {
	u, err := (&MockVerifier{User: TestUser()}).Verify(context.Background(), "x")
	if err != nil || u.UID != TestUser().UID {
		t.Fatalf("unexpected result %+v (%v)", u, err)
	}
	if _, err := (&MockVerifier{Error: ErrTokenRevoked}).Verify(context.Background(), "x"); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
}
