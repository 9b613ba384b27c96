package lead

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/janisto/realty-portal/internal/testutil"
)

func sampleLead(id string, created time.Time) *Lead {
	return &Lead{
		ID:         id,
		Name:       "Maria Silva",
		Email:      "maria@example.com",
		Phone:      "+55 54 99999-0000",
		PostalCode: "95670000",
		City:       "gramado",
		State:      "RS",
		Source:     SourcePopupHome,
		CreatedAt:  created,
	}
}

func exerciseRepository(t *testing.T, repo Repository) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.Insert(ctx, sampleLead("lead-a", base)); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Insert(ctx, sampleLead("lead-b", base.Add(time.Minute))); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	leads, err := repo.List(ctx, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(leads) != 2 {
		t.Fatalf("expected 2 leads, got %d", len(leads))
	}
	if leads[0].ID != "lead-b" || leads[1].ID != "lead-a" {
		t.Fatalf("expected newest first, got %s, %s", leads[0].ID, leads[1].ID)
	}
	if leads[0].City != "gramado" || leads[0].Source != SourcePopupHome {
		t.Fatalf("unexpected round trip %+v", leads[0])
	}
	if !leads[0].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("unexpected createdAt %v", leads[0].CreatedAt)
	}

	got, err := repo.Get(ctx, "lead-a")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Email != leads[1].Email || got.Phone != leads[1].Phone {
		t.Fatalf("unexpected lead %+v", got)
	}
	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepository(t *testing.T) {
	exerciseRepository(t, NewMemoryRepository())
}

func TestMemoryRepositoryError(t *testing.T) {
	repo := NewMemoryRepository()
	repo.SetError(errors.New("unavailable"))
	if err := repo.Insert(context.Background(), sampleLead("x", time.Now())); err == nil {
		t.Fatal("expected insert error")
	}
	if _, err := repo.List(context.Background(), 1); err == nil {
		t.Fatal("expected list error")
	}
	repo.SetError(nil)
	if err := repo.Insert(context.Background(), sampleLead("x", time.Now())); err != nil {
		t.Fatalf("unexpected error after reset: %v", err)
	}
}

func TestFirestoreRepository(t *testing.T) {
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

	repo := NewFirestoreRepository(client)
	exerciseRepository(t, repo)

	if err := repo.Insert(context.Background(), sampleLead("lead-a", time.Now())); err == nil {
		t.Fatal("expected duplicate ID to be rejected")
	}
}

func TestPostgresRepository(t *testing.T) {
	url := testutil.PostgresURL(t)
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	repo := NewPostgresRepository(pool)
	if err := repo.Migrate(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE leads"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}

	exerciseRepository(t, repo)

	if err := repo.Insert(ctx, sampleLead("lead-a", time.Now())); err == nil {
		t.Fatal("expected primary key violation")
	}
}
