package respond

import (
	"strconv"
	"strings"
)

type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. A missing or
// invalid q is 1.0; the last q parameter wins.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		params := strings.Split(part, ";")
		mt := strings.ToLower(strings.TrimSpace(params[0]))
		if mt == "" {
			continue
		}
		typ, sub, ok := strings.Cut(mt, "/")
		if !ok {
			sub = "*"
		}
		mr := mediaRange{typ: strings.TrimSpace(typ), subtype: strings.TrimSpace(sub), q: 1.0}
		for _, p := range params[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || strings.ToLower(strings.TrimSpace(k)) != "q" {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || q < 0 || q > 1 {
				q = 1.0
			}
			mr.q = q
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// rank returns the q value and specificity of the most specific range
// matching the format family ("json" or "cbor"). Specificity runs from 0
// (*/*) to 4 (application/problem+format); -1 means no range matched.
func rank(ranges []mediaRange, format string) (float64, int) {
	bestQ, bestSpec := 0.0, -1
	for _, mr := range ranges {
		spec := -1
		switch {
		case mr.typ == "application" && mr.subtype == "problem+"+format:
			spec = 4
		case mr.typ == "application" && mr.subtype == format:
			spec = 3
		case mr.typ == "application" && mr.subtype == "*+"+format:
			spec = 2
		case mr.typ == "application" && mr.subtype == "*":
			spec = 1
		case mr.typ == "*" && mr.subtype == "*":
			spec = 0
		}
		if spec > bestSpec || (spec == bestSpec && spec >= 0 && mr.q > bestQ) {
			bestQ, bestSpec = mr.q, spec
		}
	}
	return bestQ, bestSpec
}

// selectFormat reports whether the problem should be CBOR. The higher q
// wins, specificity breaks ties, JSON is the default.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	cq, cspec := rank(ranges, "cbor")
	if cspec < 0 || cq == 0 {
		return false
	}
	jq, jspec := rank(ranges, "json")
	if jspec < 0 || jq == 0 {
		return true
	}
	if cq != jq {
		return cq > jq
	}
	return cspec > jspec
}
