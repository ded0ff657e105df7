package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// Params are the values resolved for one request. They do not change after
// the pre-handler phase.
type Params struct {
	Page    int
	Limit   int
	Enabled bool
}

// Offset returns the number of items before the current page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// ResolvePagination decides whether pagination is on for this request:
// an active query flag with a literal "true"/"false" first, then the route
// default, then the global default.
func (c *Config) ResolvePagination(query url.Values, ov RouteOverride) bool {
	flag := c.Query.Pagination
	if flag.Active && query.Has(flag.Name) {
		switch strings.TrimSpace(query.Get(flag.Name)) {
		case "true":
			return true
		case "false":
			return false
		}
	}

	return c.paginationDefault(ov)
}

// paginationDefault is the route default of the pagination flag, or the
// global default when the route sets none.
func (c *Config) paginationDefault(ov RouteOverride) bool {
	if ov.Defaults.Pagination != nil {
		return *ov.Defaults.Pagination
	}
	return c.Query.Pagination.Default
}

// ResolvePageAndLimit reads page and limit from the query string, falling
// back to route and global defaults. Values that do not parse, and limits
// below one, are handled according to the invalid policy.
func (c *Config) ResolvePageAndLimit(query url.Values, ov RouteOverride) (page, limit int, err error) {
	pageDefault := c.Query.Page.Default
	if ov.Defaults.Page != nil {
		pageDefault = *ov.Defaults.Page
	}
	limitDefault := c.Query.Limit.Default
	if ov.Defaults.Limit != nil {
		limitDefault = *ov.Defaults.Limit
	}

	page, err = c.resolveInt(query, c.Query.Page.Name, pageDefault, func(int) bool { return true })
	if err != nil {
		return 0, 0, err
	}

	limit, err = c.resolveInt(query, c.Query.Limit.Name, limitDefault, func(v int) bool { return v > 0 })
	if err != nil {
		return 0, 0, err
	}

	return page, limit, nil
}

func (c *Config) resolveInt(query url.Values, name string, def int, valid func(int) bool) (int, error) {
	raw := strings.TrimSpace(query.Get(name))
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err == nil && valid(v) {
		return v, nil
	}

	if c.Query.Invalid == InvalidBadRequest {
		return 0, &ClientInputError{Param: name, Value: raw}
	}
	return def, nil
}

// applyToQuery writes the resolved values into the query the handler sees.
// An active pagination flag is dropped when the resolved value equals the
// route's default and recorded otherwise. An inactive flag is left as sent.
func (c *Config) applyToQuery(query url.Values, p Params, ov RouteOverride) {
	flag := c.Query.Pagination
	if flag.Active {
		if p.Enabled == c.paginationDefault(ov) {
			query.Del(flag.Name)
		} else {
			query.Set(flag.Name, strconv.FormatBool(p.Enabled))
		}
	}

	if !p.Enabled {
		return
	}
	query.Set(c.Query.Page.Name, strconv.Itoa(p.Page))
	query.Set(c.Query.Limit.Name, strconv.Itoa(p.Limit))
}
