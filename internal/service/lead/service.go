package lead

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Service errors
var (
	ErrValidation  = errors.New("invalid lead")
	ErrPersistence = errors.New("lead could not be stored")
	ErrNotFound    = errors.New("lead not found")
)

// Source is the acquisition channel of a lead.
type Source string

const (
	SourceContactForm Source = "contact_form"
	SourcePopupHome   Source = "popup_home"
)

// Lead is a stored prospect. City holds the normalized city key; Street,
// Neighborhood and State are kept as typed.
type Lead struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Message      string
	PostalCode   string
	Street       string
	Neighborhood string
	City         string
	State        string
	PropertyID   string
	Source       Source
	CreatedAt    time.Time
}

// Input is the raw form submission.
type Input struct {
	Name         string
	Email        string
	Phone        string
	Message      string
	PostalCode   string
	Street       string
	Neighborhood string
	City         string
	State        string
	PropertyID   string
	Source       Source
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every invalid field of a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Reason
	}
	return fmt.Sprintf("%s (%s)", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap enables errors.Is against ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// PersistenceError wraps a store failure. The lead does not exist when it
// is returned.
type PersistenceError struct {
	cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPersistence, e.cause)
}

// Unwrap enables errors.Is against ErrPersistence and the store error.
func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.cause}
}

// Repository stores leads. Leads are insert-only.
type Repository interface {
	Insert(ctx context.Context, lead *Lead) error
	// Get returns ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*Lead, error)
	// List returns the most recent leads first.
	List(ctx context.Context, limit int) ([]Lead, error)
}

// Personalizer records the visitor's city after a successful submission.
type Personalizer interface {
	Set(ctx context.Context, visitorID, city string) error
}
