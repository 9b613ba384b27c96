package personalization

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestSetGetNormalizes(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	if err := s.Set(ctx, "v1", "São Paulo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	city, ok := s.Get(ctx, "v1")
	if !ok || city != "sao paulo" {
		t.Fatalf("expected sao paulo, got %q (ok=%v)", city, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	_ = s.Set(ctx, "v1", "Gramado")
	_ = s.Set(ctx, "v1", "Canela")

	city, _ := s.Get(ctx, "v1")
	if city != "canela" {
		t.Fatalf("expected last write to win, got %q", city)
	}
}

func TestVisitorsAreIsolated(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	_ = s.Set(ctx, "v1", "Gramado")
	if _, ok := s.Get(ctx, "v2"); ok {
		t.Fatal("expected no city for other visitor")
	}
}

func TestClear(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	_ = s.Set(ctx, "v1", "Gramado")
	if err := s.Clear(ctx, "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.Get(ctx, "v1"); ok {
		t.Fatal("expected city to be cleared")
	}
}

func TestSetEmptyCityClears(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	_ = s.Set(ctx, "v1", "Gramado")
	_ = s.Set(ctx, "v1", "   ")
	if _, ok := s.Get(ctx, "v1"); ok {
		t.Fatal("expected blank city to clear personalization")
	}
}

func TestGetTreatsMalformedAsAbsent(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	ctx := context.Background()

	for _, raw := range []string{"", "São Paulo", "\xff\xfe", "GRAMADO"} {
		_ = backend.Set(ctx, key("v1", cityField), raw)
		if city, ok := s.Get(ctx, "v1"); ok {
			t.Fatalf("expected %q to read as absent, got %q", raw, city)
		}
	}
}

func TestGetTreatsBackendErrorAsAbsent(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	ctx := context.Background()

	_ = s.Set(ctx, "v1", "Gramado")
	backend.SetError(errors.New("connection reset"))

	if _, ok := s.Get(ctx, "v1"); ok {
		t.Fatal("expected backend failure to read as absent")
	}
	if s.PromptShown(ctx, "v1") {
		t.Fatal("expected backend failure to read as prompt not shown")
	}
	if err := s.Set(ctx, "v1", "Canela"); err == nil {
		t.Fatal("expected write to surface backend failure")
	}
}

func TestRequiresVisitor(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	if err := s.Set(ctx, "", "Gramado"); !errors.Is(err, ErrNoVisitor) {
		t.Fatalf("expected ErrNoVisitor, got %v", err)
	}
	if err := s.Clear(ctx, ""); !errors.Is(err, ErrNoVisitor) {
		t.Fatalf("expected ErrNoVisitor, got %v", err)
	}
	if err := s.MarkPromptShown(ctx, ""); !errors.Is(err, ErrNoVisitor) {
		t.Fatalf("expected ErrNoVisitor, got %v", err)
	}
	if _, ok := s.Get(ctx, ""); ok {
		t.Fatal("expected absent for empty visitor")
	}
}

func TestPromptFlag(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	ctx := context.Background()

	if s.PromptShown(ctx, "v1") {
		t.Fatal("expected prompt not shown initially")
	}
	if err := s.MarkPromptShown(ctx, "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.PromptShown(ctx, "v1") {
		t.Fatal("expected prompt shown")
	}

	_ = backend.Set(ctx, key("v2", promptField), "yes please")
	if s.PromptShown(ctx, "v2") {
		t.Fatal("expected malformed flag to read as false")
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	var got []Change
	unsubscribe := s.Subscribe(func(c Change) {
		got = append(got, c)
	})

	_ = s.Set(ctx, "v1", "Gramado")
	_ = s.Clear(ctx, "v1")
	_ = s.MarkPromptShown(ctx, "v1")

	if len(got) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(got))
	}
	if got[0] != (Change{VisitorID: "v1", City: "gramado"}) {
		t.Fatalf("unexpected first change: %+v", got[0])
	}
	if got[1] != (Change{VisitorID: "v1", Cleared: true}) {
		t.Fatalf("unexpected second change: %+v", got[1])
	}

	unsubscribe()
	unsubscribe()
	_ = s.Set(ctx, "v1", "Canela")
	if len(got) != 2 {
		t.Fatalf("expected no changes after unsubscribe, got %d", len(got))
	}
}

func TestFailedWriteDoesNotNotify(t *testing.T) {
	backend := NewMemoryBackend()
	s := NewStore(backend)
	notified := false
	s.Subscribe(func(Change) { notified = true })

	backend.SetError(errors.New("down"))
	_ = s.Set(context.Background(), "v1", "Gramado")
	if notified {
		t.Fatal("expected no notification for a failed write")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	var mu sync.Mutex
	count := 0
	s.Subscribe(func(Change) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_ = s.Set(ctx, "v1", "Gramado")
			} else {
				_, _ = s.Get(ctx, "v1")
			}
		}()
	}
	wg.Wait()

	if count != 25 {
		t.Fatalf("expected 25 notifications, got %d", count)
	}
}
