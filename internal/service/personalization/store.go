// Package personalization keeps each visitor's last known city and the
// onboarding prompt flag, and notifies subscribers when the city changes.
package personalization

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/janisto/realty-portal/internal/location"
	applog "github.com/janisto/realty-portal/internal/platform/logging"
)

// ErrNoVisitor is returned by writes without a visitor identifier.
var ErrNoVisitor = errors.New("visitor id required")

const (
	cityField   = "city"
	promptField = "prompt_shown"

	maxCityLength = 100
)

// Backend is the durable key-value slot storage.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Change describes a personalization update for one visitor.
type Change struct {
	VisitorID string
	City      string
	Cleared   bool
}

// Listener receives changes. It is called synchronously and must not block.
type Listener func(Change)

// Store is the personalization state for all visitors. Writes overwrite
// (last write wins); reads treat missing or malformed values as absent.
type Store struct {
	backend Backend

	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
}

// NewStore creates a store over backend.
func NewStore(backend Backend) *Store {
	return &Store{
		backend:   backend,
		listeners: make(map[uint64]Listener),
	}
}

func key(visitorID, field string) string {
	return "personalization:" + visitorID + ":" + field
}

// Set stores the normalized form of city for the visitor. An empty city
// clears the slot.
func (s *Store) Set(ctx context.Context, visitorID, city string) error {
	if visitorID == "" {
		return ErrNoVisitor
	}
	normalized := location.Normalize(city)
	if normalized == "" {
		return s.Clear(ctx, visitorID)
	}
	if err := s.backend.Set(ctx, key(visitorID, cityField), normalized); err != nil {
		return fmt.Errorf("storing personalization city: %w", err)
	}
	s.notify(Change{VisitorID: visitorID, City: normalized})
	return nil
}

// Get returns the visitor's city. Backend failures and values that are not
// a valid normalized city read as absent.
func (s *Store) Get(ctx context.Context, visitorID string) (string, bool) {
	if visitorID == "" {
		return "", false
	}
	v, ok, err := s.backend.Get(ctx, key(visitorID, cityField))
	if err != nil {
		applog.LogWarn(ctx, "personalization read failed", zap.Error(err))
		return "", false
	}
	if !ok || !validCity(v) {
		return "", false
	}
	return v, true
}

func validCity(v string) bool {
	return v != "" &&
		utf8.ValidString(v) &&
		len(v) <= maxCityLength*utf8.UTFMax &&
		location.Normalize(v) == v
}

// Clear removes the visitor's city.
func (s *Store) Clear(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return ErrNoVisitor
	}
	if err := s.backend.Delete(ctx, key(visitorID, cityField)); err != nil {
		return fmt.Errorf("clearing personalization city: %w", err)
	}
	s.notify(Change{VisitorID: visitorID, Cleared: true})
	return nil
}

// PromptShown reports whether the onboarding prompt was shown to the
// visitor. Absent, malformed, or unreadable values report false.
func (s *Store) PromptShown(ctx context.Context, visitorID string) bool {
	if visitorID == "" {
		return false
	}
	v, ok, err := s.backend.Get(ctx, key(visitorID, promptField))
	if err != nil {
		applog.LogWarn(ctx, "personalization prompt flag read failed", zap.Error(err))
		return false
	}
	return ok && v == "true"
}

// MarkPromptShown records that the onboarding prompt was shown.
func (s *Store) MarkPromptShown(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return ErrNoVisitor
	}
	if err := s.backend.Set(ctx, key(visitorID, promptField), "true"); err != nil {
		return fmt.Errorf("storing prompt flag: %w", err)
	}
	return nil
}

// Subscribe registers fn for every change and returns a function that
// removes it. The returned function is idempotent.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify(c Change) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(c)
	}
}
