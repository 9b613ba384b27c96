// Package location derives the canonical city key shared by lead persistence,
// personalization, and catalog matching.
package location

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison key for a free-text city name: trimmed,
// lower-cased, combining marks removed, inner whitespace collapsed.
//
// Normalize is idempotent and never fails; an empty or blank input yields "".
func Normalize(city string) string {
	s := strings.ToLower(strings.TrimSpace(city))
	if s == "" {
		return ""
	}
	// A fresh transformer per call: transform.Chain is stateful and not safe
	// for concurrent use.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(out), " ")
}

// Matches reports whether two normalized cities are related by substring in
// either direction ("porto alegre" and "porto alegre - zona sul" match).
// An empty value on either side never matches.
func Matches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Contains reports whether the normalized form of city contains the
// normalized form of query. Used for explicit, user-typed city filters.
func Contains(city, query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(Normalize(city), q)
}
