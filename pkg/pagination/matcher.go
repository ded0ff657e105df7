package pagination

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Matcher tests a route path.
type Matcher interface {
	Match(path string) bool
	String() string
}

// Exact matches one literal route path.
type Exact string

func (e Exact) Match(path string) bool { return string(e) == path }

func (e Exact) String() string { return string(e) }

// Pattern matches route paths against a compiled regular expression.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles expr into a Pattern.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid route pattern %q: %w", expr, err)
	}
	return Pattern{re: re}, nil
}

func (p Pattern) Match(path string) bool { return p.re.MatchString(path) }

func (p Pattern) String() string { return patternPrefix + p.re.String() }

// ParseMatcher turns a route entry into a Matcher. Entries starting with
// "re:" are regular expressions, everything else is an exact path.
func ParseMatcher(entry string) (Matcher, error) {
	if expr, ok := strings.CutPrefix(entry, patternPrefix); ok {
		return NewPattern(expr)
	}
	return Exact(entry), nil
}

func compileMatchers(field string, entries []string) ([]Matcher, bool, error) {
	matchers := make([]Matcher, 0, len(entries))
	wildcard := false
	for i, entry := range entries {
		if entry == "" {
			return nil, false, newConfigError(fmt.Sprintf("%s[%d]", field, i), "must be a non-empty string")
		}
		if entry == WildcardRoute {
			wildcard = true
			continue
		}
		m, err := ParseMatcher(entry)
		if err != nil {
			return nil, false, wrapConfigError(fmt.Sprintf("%s[%d]", field, i), err)
		}
		matchers = append(matchers, m)
	}
	return matchers, wildcard, nil
}

func matchAny(matchers []Matcher, path string) bool {
	for _, m := range matchers {
		if m.Match(path) {
			return true
		}
	}
	return false
}

// IsPaginated reports whether the route identified by method and path takes
// part in pagination. A route override with Enabled set always wins;
// otherwise only GET routes that are included and not excluded qualify.
func (c *Config) IsPaginated(method, path string) bool {
	if ov := c.Override(method, path); ov.Enabled != nil {
		return *ov.Enabled
	}

	return method == http.MethodGet &&
		(c.includeAll || matchAny(c.Include, path)) &&
		!matchAny(c.Exclude, path)
}
