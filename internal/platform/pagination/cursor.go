package pagination

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCursor indicates a cursor that does not decode or belongs to
// another collection.
var ErrInvalidCursor = errors.New("invalid cursor format")

// Cursor is an opaque page position: the collection it belongs to and the
// ID of the last item already seen.
type Cursor struct {
	Kind  string
	After string
}

// Encode returns the URL-safe base64 form.
func (c Cursor) Encode() string {
	return base64.RawURLEncoding.EncodeToString([]byte(c.Kind + ":" + c.After))
}

// Decode parses s for the collection kind. An empty s is the first page.
func Decode(s, kind string) (Cursor, error) {
	if s == "" {
		return Cursor{Kind: kind}, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Cursor{}, ErrInvalidCursor
	}
	k, after, ok := strings.Cut(string(raw), ":")
	if !ok || k != kind {
		return Cursor{}, ErrInvalidCursor
	}
	return Cursor{Kind: k, After: after}, nil
}
