package postal

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Service errors
var (
	ErrFormat   = errors.New("postal code must have 8 digits")
	ErrNotFound = errors.New("postal code not found")
	ErrService  = errors.New("postal directory unavailable")
)

// LookupErrorKind classifies lookup failures.
type LookupErrorKind string

const (
	LookupErrorKindFormat   LookupErrorKind = "format"
	LookupErrorKindNotFound LookupErrorKind = "not_found"
	LookupErrorKindService  LookupErrorKind = "service"
)

// LookupError carries the failure kind and, for directory responses, the
// upstream HTTP status.
type LookupError struct {
	Kind   LookupErrorKind
	Code   string
	Status int
	cause  error
}

func (e *LookupError) Error() string {
	if e == nil {
		return "postal lookup error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("postal lookup error (kind=%s code=%q): %v", e.Kind, e.Code, e.cause)
	}
	return fmt.Sprintf("postal lookup error (kind=%s code=%q status=%d): %v", e.Kind, e.Code, e.Status, e.cause)
}

// Unwrap enables errors.Is/As against sentinel service errors.
func (e *LookupError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// CodeLength is the number of digits in a valid postal code.
const CodeLength = 8

// Address is a resolved postal address. Street and Neighborhood may be empty;
// City and State come together.
type Address struct {
	PostalCode   string
	Street       string
	Neighborhood string
	City         string
	State        string
}

// Service resolves postal codes to addresses.
//
// Lookup performs at most one directory request per call; there is no retry
// and no cache.
type Service interface {
	Lookup(ctx context.Context, raw string) (*Address, error)
}

// Digits strips every non-digit from raw.
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse returns the 8-digit form of raw or a format error.
func Parse(raw string) (string, error) {
	digits := Digits(raw)
	if len(digits) != CodeLength {
		return "", &LookupError{Kind: LookupErrorKindFormat, Code: digits, cause: ErrFormat}
	}
	return digits, nil
}

// Mask formats the digits of raw as NNNNN-NNN, truncating extra digits.
// Inputs with five or fewer digits are returned without the hyphen.
func Mask(raw string) string {
	digits := Digits(raw)
	if len(digits) > CodeLength {
		digits = digits[:CodeLength]
	}
	if len(digits) <= 5 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}
