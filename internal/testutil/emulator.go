// Package testutil holds helpers for integration tests that need the
// Firebase emulators or a Postgres database. Tests skip when the backing
// service is not reachable.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"testing"
	"time"
)

const (
	ProjectID  = "demo-test-project"
	fakeAPIKey = "fake-api-key" //nolint:gosec // emulator accepts any key
)

// Emulator addresses. TEST_AUTH_EMULATOR_HOST and
// TEST_FIRESTORE_EMULATOR_HOST override the defaults.
var (
	AuthEmulatorHost      = envOr("TEST_AUTH_EMULATOR_HOST", "127.0.0.1:7110")
	FirestoreEmulatorHost = envOr("TEST_FIRESTORE_EMULATOR_HOST", "127.0.0.1:7130")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func reachable(host string) bool {
	conn, err := net.DialTimeout("tcp", host, 100*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// EmulatorAvailable reports whether both the Auth and Firestore emulators
// accept connections.
func EmulatorAvailable() bool {
	return reachable(AuthEmulatorHost) && reachable(FirestoreEmulatorHost)
}

func SkipIfEmulatorUnavailable(t *testing.T) {
	t.Helper()
	if !EmulatorAvailable() {
		t.Skip("Firebase emulators not available")
	}
}

func SkipIfFirestoreUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(FirestoreEmulatorHost) {
		t.Skip("Firestore emulator not available")
	}
}

// PostgresURL returns TEST_DATABASE_URL or skips the test when it is unset.
func PostgresURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return url
}

// SetupEmulator points the Firebase SDKs at the emulators for this test.
func SetupEmulator(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", AuthEmulatorHost)
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost)
}

func call(t *testing.T, method, url string, body any, out any) {
	t.Helper()
	var payload io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request: %v", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, payload)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		t.Fatalf("%s %s: status %d", method, url, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

// ClearAccounts removes every Auth emulator user.
func ClearAccounts(t *testing.T) {
	t.Helper()
	call(t, http.MethodDelete,
		fmt.Sprintf("http://%s/emulator/v1/projects/%s/accounts", AuthEmulatorHost, ProjectID), nil, nil)
}

// ClearFirestore removes every Firestore emulator document.
func ClearFirestore(t *testing.T) {
	t.Helper()
	call(t, http.MethodDelete,
		fmt.Sprintf("http://%s/emulator/v1/projects/%s/databases/(default)/documents",
			FirestoreEmulatorHost, ProjectID), nil, nil)
}

func ClearEmulators(t *testing.T) {
	t.Helper()
	ClearAccounts(t)
	ClearFirestore(t)
}

// SignUpResponse is the Auth emulator sign-up result.
type SignUpResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

// CreateTestUser signs up an email/password user and returns its ID token.
func CreateTestUser(t *testing.T, email, password string) *SignUpResponse {
	t.Helper()
	var out SignUpResponse
	call(t, http.MethodPost,
		fmt.Sprintf("http://%s/identitytoolkit.googleapis.com/v1/accounts:signUp?key=%s", AuthEmulatorHost, fakeAPIKey),
		map[string]any{"email": email, "password": password, "returnSecureToken": true},
		&out)
	return &out
}
