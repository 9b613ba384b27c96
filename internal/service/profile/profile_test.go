package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/janisto/realty-portal/internal/testutil"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func exerciseLifecycle(t *testing.T, svc Service) {
	t.Helper()
	ctx := context.Background()

	if _, err := svc.Get(ctx, "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before create, got %v", err)
	}
	if _, err := svc.Update(ctx, "user-1", UpdateParams{Phone: strPtr("1")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update before create, got %v", err)
	}

	created, err := svc.Create(ctx, "user-1", CreateParams{
		Name:  "  Maria Souza ",
		Email: " Maria@Example.com",
		Phone: "(54) 99999-0000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "user-1" || created.Name != "Maria Souza" || created.Email != "maria@example.com" {
		t.Fatalf("unexpected profile %+v", created)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", created.CreatedAt, created.UpdatedAt)
	}

	if _, err := svc.Create(ctx, "user-1", CreateParams{Name: "Other"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	updated, err := svc.Update(ctx, "user-1", UpdateParams{Address: strPtr(" Rua das Flores, 10 ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Address != "Rua das Flores, 10" || updated.Phone != "(54) 99999-0000" {
		t.Fatalf("expected address set and phone kept, got %+v", updated)
	}
	if updated.Name != "Maria Souza" {
		t.Fatalf("name must not change on update, got %q", updated.Name)
	}

	cleared, err := svc.Update(ctx, "user-1", UpdateParams{Phone: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cleared.Phone != "" || cleared.Address != "Rua das Flores, 10" {
		t.Fatalf("expected phone cleared only, got %+v", cleared)
	}

	got, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Phone != "" || got.Address != "Rua das Flores, 10" || got.Email != "maria@example.com" {
		t.Fatalf("unexpected stored profile %+v", got)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("updated_at before created_at: %+v", got)
	}

	if _, err := svc.Get(ctx, "user-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("profiles must be per user, got %v", err)
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	exerciseLifecycle(t, NewMemoryStore())
}

func TestMemoryStoreSetError(t *testing.T) {
	store := NewMemoryStore()
	boom := errors.New("boom")
	store.SetError(boom)

	if _, err := store.Create(context.Background(), "user-1", CreateParams{Name: "A"}); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if _, err := store.Get(context.Background(), "user-1"); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}

	store.SetError(nil)
	if _, err := store.Create(context.Background(), "user-1", CreateParams{Name: "A"}); err != nil {
		t.Fatalf("unexpected error after clearing: %v", err)
	}
}

func TestCategorizeError(t *testing.T) {
	cases := map[error]string{
		ErrAlreadyExists:     "already_exists",
		ErrNotFound:          "not_found",
		errors.New("socket"): "internal_error",
	}
	for err, want := range cases {
		if got := categorizeError(err); got != want {
			t.Errorf("categorizeError(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestNewProfileNormalizes(t *testing.T) {
	p := newProfile("u", CreateParams{Name: " A ", Email: strings.ToUpper("a@b.com")}, testTime)
	if p.Name != "A" || p.Email != "a@b.com" || !p.CreatedAt.Equal(testTime) {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestFirestoreStoreLifecycle(t *testing.T) {
	testutil.SkipIfFirestoreUnavailable(t)
	testutil.SetupEmulator(t)
	testutil.ClearFirestore(t)

	client, err := firestore.NewClient(context.Background(), testutil.ProjectID)
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}
	t.Cleanup(func() {
		testutil.ClearFirestore(t)
		_ = client.Close()
	})

	exerciseLifecycle(t, NewFirestoreStore(client))
}
