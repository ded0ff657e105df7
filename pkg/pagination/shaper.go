package pagination

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Exchange is everything the shaper needs from one request/response pair.
type Exchange struct {
	Params   Params
	BaseURI  string
	Path     string
	RawQuery string

	Status int
	// Header is the live response header. Header mode rewrites it in place.
	Header http.Header
	// Body is the decoded handler result: []any or map[string]any.
	Body any
	// TotalCount is the side-channel count set by the handler, if any.
	TotalCount *int64
	// Key is the extraction key given to Reply.
	Key string
	// Override holds the settings of the matched route.
	Override RouteOverride
}

// Shaped is the rewritten response.
type Shaped struct {
	Status int
	Body   any
}

// Extracted is a handler result split into its parts.
type Extracted struct {
	Items       []any
	TotalCount  *int64
	Passthrough map[string]any
}

// Extract finds the results sequence and the total count in a handler result.
// A bare sequence takes its total from the side channel; an object is read
// through the extraction key or the configured results and totalCount names,
// and its remaining fields are passed through.
func (c *Config) Extract(body any, key string, sideTotal *int64) (Extracted, error) {
	switch v := body.(type) {
	case []any:
		return Extracted{Items: v, TotalCount: sideTotal}, nil

	case map[string]any:
		field := c.Reply.Parameters.Results.Name
		if key != "" {
			field = key
		}
		raw, ok := v[field]
		if !ok {
			return Extracted{}, newShapeError("results field %q does not exist on the response", field)
		}
		items, ok := raw.([]any)
		if !ok {
			return Extracted{}, newShapeError("results field %q must be an array", field)
		}

		total := sideTotal
		totalField := c.Reply.Parameters.TotalCount.Name
		if tv, ok := v[totalField]; ok {
			t, err := toTotal(tv)
			if err != nil {
				return Extracted{}, &InvalidResultShapeError{Reason: fmt.Sprintf("total count field %q", totalField), Err: err}
			}
			total = t
		}

		passthrough := make(map[string]any, len(v))
		for k, val := range v {
			if k == field || k == totalField {
				continue
			}
			passthrough[k] = val
		}
		return Extracted{Items: items, TotalCount: total, Passthrough: passthrough}, nil

	default:
		return Extracted{}, newShapeError("the results must be an array, got %T", body)
	}
}

// Shape computes the metadata and rewrites the result for the configured location.
func (c *Config) Shape(x Exchange) (Shaped, error) {
	side := x.TotalCount
	if c.Meta.Location == LocationHeader {
		if side == nil {
			side = headerTotal(x.Header)
		}
		x.Header.Del(TotalCountHeader)
	}

	res, err := c.Extract(x.Body, x.Key, side)
	if err != nil {
		return Shaped{}, err
	}

	links := c.NewLinkBuilder(x.BaseURI, x.Path, x.RawQuery, x.Params, x.Override)
	meta := Calculate(x.Params, len(res.Items), res.TotalCount, links.URI)

	if c.Meta.Location == LocationHeader {
		return c.shapeHeader(x, res, meta), nil
	}
	return c.shapeBody(x, res, meta), nil
}

func (c *Config) shapeBody(x Exchange, res Extracted, meta Metadata) Shaped {
	env := make(map[string]any, len(res.Passthrough)+2)
	for k, v := range res.Passthrough {
		if k == c.Meta.Name || k == c.Results.Name {
			continue
		}
		env[k] = v
	}
	env[c.Meta.Name] = c.metaObject(meta)
	env[c.Results.Name] = res.Items

	return Shaped{Status: c.SuccessStatus(x.Status), Body: env}
}

func (c *Config) shapeHeader(x Exchange, res Extracted, meta Metadata) Shaped {
	status := x.Status
	if meta.TotalCount != nil && *meta.TotalCount > int64(meta.Limit) && meta.Count > 0 {
		start := int64(x.Params.Offset())
		end := start + int64(meta.Count) - 1
		x.Header.Set("Content-Range", fmt.Sprintf("%d-%d/%d", start, end, *meta.TotalCount))
		x.Header.Set("Link", LinkHeader(meta))
		status = c.SuccessStatus(status)
	}
	return Shaped{Status: status, Body: res.Items}
}

// LinkHeader formats the non-nil links of meta as an RFC 5988 Link header.
func LinkHeader(meta Metadata) string {
	rels := []struct {
		rel string
		uri *string
	}{
		{"self", meta.Self},
		{"first", meta.First},
		{"last", meta.Last},
		{"next", meta.Next},
		{"prev", meta.Previous},
	}

	parts := make([]string, 0, len(rels))
	for _, r := range rels {
		if r.uri != nil {
			parts = append(parts, fmt.Sprintf("<%s>; rel=%q", *r.uri, r.rel))
		}
	}
	return strings.Join(parts, ", ")
}

func headerTotal(h http.Header) *int64 {
	raw := strings.TrimSpace(h.Get(TotalCountHeader))
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// toTotal converts a decoded JSON value into a total count. null and
// negative values mean unknown.
func toTotal(v any) (*int64, error) {
	var n int64
	switch t := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", t.String())
		}
		n = i
	case float64:
		if t != math.Trunc(t) {
			return nil, fmt.Errorf("%v is not an integer", t)
		}
		n = int64(t)
	case int:
		n = int64(t)
	case int64:
		n = t
	default:
		return nil, fmt.Errorf("unexpected type %T", v)
	}
	if n < 0 {
		return nil, nil
	}
	return &n, nil
}
