package property

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/firestore"

	"github.com/janisto/realty-portal/internal/catalog"
	"github.com/janisto/realty-portal/internal/testutil"
)

func setupFirestoreTest(t *testing.T) *FirestoreStore {
	t.Helper()

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
	return NewFirestoreStore(client)
}

func TestFirestoreLifecycle(t *testing.T) {
	store := setupFirestoreTest(t)
	ctx := context.Background()

	bedrooms := 3
	created, err := store.Create(ctx, "admin-1", CreateParams{
		Title:           "Chalet",
		TransactionType: catalog.TransactionSale,
		PropertyType:    catalog.PropertyHouse,
		City:            "Gramado",
		Bedrooms:        &bedrooms,
		Images:          []string{"https://img.example/a.jpg", "https://img.example/b.jpg"},
		Active:          true,
		Featured:        true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Chalet" || got.Bedrooms == nil || *got.Bedrooms != 3 || len(got.Images) != 2 {
		t.Fatalf("unexpected round trip %+v", got)
	}
	if got.PriceMin != nil {
		t.Fatal("expected unset price to stay nil")
	}

	inactive := false
	updated, err := store.Update(ctx, "admin-1", created.ID, UpdateParams{Active: &inactive})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Active || updated.Title != "Chalet" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	active, err := store.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active listings, got %d", len(active))
	}
	all, _ := store.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected one listing, got %d", len(all))
	}

	if err := store.Delete(ctx, "admin-1", created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "admin-1", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Update(ctx, "admin-1", created.ID, UpdateParams{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
