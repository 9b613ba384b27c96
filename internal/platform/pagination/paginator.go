package pagination

import (
	"net/url"
	"strconv"
)

// Page is one slice of an ordered collection.
type Page[T any] struct {
	Items []T
	// Total is the size of the whole collection.
	Total int
	Next  string
	Prev  string
	// Link is the RFC 8288 header value for Next and Prev.
	Link string
}

// Request describes the page to cut.
type Request struct {
	Cursor Cursor
	Limit  int
	// Path and Query build the Link header; the cursor and limit parameters
	// are overwritten.
	Path  string
	Query url.Values
}

// Paginate cuts the page following req.Cursor out of items. A cursor whose
// item is no longer present restarts at the first page.
func Paginate[T any](items []T, req Request, id func(T) string) Page[T] {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	total := len(items)

	start := 0
	if req.Cursor.After != "" {
		for i, item := range items {
			if id(item) == req.Cursor.After {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, total)
	page := Page[T]{Items: items[start:end], Total: total}

	if end < total && end > start {
		page.Next = Cursor{Kind: req.Cursor.Kind, After: id(items[end-1])}.Encode()
	}
	if start > 0 {
		prev := Cursor{Kind: req.Cursor.Kind}
		if start > limit {
			prev.After = id(items[start-limit-1])
		}
		page.Prev = prev.Encode()
	}

	q := cloneValues(req.Query)
	q.Set("limit", strconv.Itoa(limit))
	page.Link = BuildLinkHeader(req.Path, q, page.Next, page.Prev)
	return page
}
