package pagination

import (
	"strconv"
)

// Metadata describes one page of results. TotalCount and PageCount are nil
// when the handler did not report a total.
type Metadata struct {
	Page        int
	Limit       int
	Count       int
	TotalCount  *int64
	PageCount   *int64
	HasNext     bool
	HasPrevious bool

	Self     *string
	First    *string
	Last     *string
	Previous *string
	Next     *string
}

// PageCount returns ceil(total/limit), 0 for an empty set and nil when the
// total is unknown.
func PageCount(total *int64, limit int) *int64 {
	if total == nil {
		return nil
	}
	var n int64
	if *total > 0 && limit > 0 {
		l := int64(limit)
		n = *total / l
		if *total%l != 0 {
			n++
		}
	}
	return &n
}

// HasNext reports whether a page after page exists.
func HasNext(page, limit int, total *int64) bool {
	if total == nil || *total == 0 {
		return false
	}
	return int64(page) < *PageCount(total, limit)
}

// HasPrevious reports whether a page before page exists.
func HasPrevious(page int, total *int64) bool {
	if total == nil || *total == 0 {
		return false
	}
	return page > 1
}

// URIFunc returns the link to a page, or nil when the page does not exist.
type URIFunc func(page int) *string

// Calculate derives the metadata of the current page.
func Calculate(p Params, count int, total *int64, uriFor URIFunc) Metadata {
	pageCount := PageCount(total, p.Limit)
	m := Metadata{
		Page:        p.Page,
		Limit:       p.Limit,
		Count:       count,
		TotalCount:  total,
		PageCount:   pageCount,
		HasNext:     HasNext(p.Page, p.Limit, total),
		HasPrevious: HasPrevious(p.Page, total),
		Self:        uriFor(p.Page),
		First:       uriFor(1),
	}

	if p.Page > 1 {
		m.Previous = uriFor(p.Page - 1)
	}
	if m.HasNext {
		m.Next = uriFor(p.Page + 1)
	}
	if pageCount != nil && int64(p.Page) < *pageCount {
		m.Last = uriFor(int(*pageCount))
	}
	return m
}

// LinkBuilder regenerates the request URL for other pages. It works on the
// raw query so every parameter except the page keeps its original text.
type LinkBuilder struct {
	prefix   string
	pageName string
	query    RawQuery
}

// NewLinkBuilder prepares links for baseURI+path on the route described by
// ov. The resolved limit is written into the query, and an active pagination
// flag is kept only when the route default would not reproduce the same state.
func (c *Config) NewLinkBuilder(baseURI, path, rawQuery string, p Params, ov RouteOverride) LinkBuilder {
	q := ParseRawQuery(rawQuery).With(c.Query.Limit.Name, strconv.Itoa(p.Limit))

	flag := c.Query.Pagination
	if flag.Active {
		if p.Enabled == c.paginationDefault(ov) {
			q = q.Without(flag.Name)
		} else {
			q = q.With(flag.Name, strconv.FormatBool(p.Enabled))
		}
	}

	return LinkBuilder{
		prefix:   baseURI + path,
		pageName: c.Query.Page.Name,
		query:    q,
	}
}

// URI returns the link to page, or nil for page 0.
func (b LinkBuilder) URI(page int) *string {
	if page == 0 {
		return nil
	}
	s := b.prefix + "?" + b.query.With(b.pageName, strconv.Itoa(page)).Encode()
	return &s
}

// metaObject renders the active metadata fields under their configured names.
func (c *Config) metaObject(m Metadata) map[string]any {
	out := make(map[string]any, 12)
	set := func(f Field, v any) {
		if f.Active {
			out[f.Name] = v
		}
	}

	if c.Meta.Page.Active {
		out[c.Query.Page.Name] = m.Page
	}
	if c.Meta.Limit.Active {
		out[c.Query.Limit.Name] = m.Limit
	}

	set(c.Meta.Count, m.Count)
	set(c.Meta.TotalCount, m.TotalCount)
	set(c.Meta.PageCount, m.PageCount)
	set(c.Meta.HasNext, m.HasNext)
	set(c.Meta.HasPrevious, m.HasPrevious)
	set(c.Meta.Self, m.Self)
	set(c.Meta.First, m.First)
	set(c.Meta.Last, m.Last)
	set(c.Meta.Previous, m.Previous)
	set(c.Meta.Next, m.Next)

	return out
}
