package pagination

import (
	"net/url"
	"strings"
)

// BuildLinkHeader renders RFC 8288 next/prev links on path, keeping query and
// replacing its cursor parameter.
func BuildLinkHeader(path string, query url.Values, next, prev string) string {
	var b strings.Builder
	add := func(rel, cursor string) {
		if cursor == "" {
			return
		}
		q := cloneValues(query)
		q.Set("cursor", cursor)
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString("<" + path + "?" + q.Encode() + `>; rel="` + rel + `"`)
	}
	add("next", next)
	add("prev", prev)
	return b.String()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
