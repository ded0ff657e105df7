package pagination

import (
	"net/url"
	"strings"
)

// rawParam is one key=value pair exactly as the client sent it.
type rawParam struct {
	key string // decoded, used for comparison
	raw string // original text of the whole pair
}

// RawQuery is an order-preserving view of a query string. Pairs that are not
// replaced keep their original bytes, so dates, arrays and nested objects
// come back exactly as the client wrote them.
type RawQuery []rawParam

// ParseRawQuery splits a raw query string without re-encoding anything.
func ParseRawQuery(raw string) RawQuery {
	raw = strings.TrimPrefix(raw, "?")
	if raw == "" {
		return RawQuery{}
	}

	parts := strings.Split(raw, "&")
	q := make(RawQuery, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		rawKey, _, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			key = rawKey
		}
		q = append(q, rawParam{key: key, raw: part})
	}
	return q
}

// With returns a copy where key holds value. The first occurrence keeps its
// position, later duplicates are dropped, and a missing key is appended.
func (q RawQuery) With(key, value string) RawQuery {
	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	out := make(RawQuery, 0, len(q)+1)
	replaced := false
	for _, p := range q {
		if p.key != key {
			out = append(out, p)
			continue
		}
		if !replaced {
			out = append(out, rawParam{key: key, raw: pair})
			replaced = true
		}
	}
	if !replaced {
		out = append(out, rawParam{key: key, raw: pair})
	}
	return out
}

// Without returns a copy with every occurrence of key removed.
func (q RawQuery) Without(key string) RawQuery {
	out := make(RawQuery, 0, len(q))
	for _, p := range q {
		if p.key != key {
			out = append(out, p)
		}
	}
	return out
}

// Encode joins the pairs back into a query string.
func (q RawQuery) Encode() string {
	parts := make([]string, len(q))
	for i, p := range q {
		parts[i] = p.raw
	}
	return strings.Join(parts, "&")
}
