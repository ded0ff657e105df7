package pagination

// InvalidPolicy decides what happens to a page or limit value that does not parse.
type InvalidPolicy string

const (
	// InvalidDefaults silently falls back to the default value.
	InvalidDefaults InvalidPolicy = "defaults"
	// InvalidBadRequest rejects the request with 400.
	InvalidBadRequest InvalidPolicy = "badRequest"
)

// Location is where pagination metadata is written.
type Location string

const (
	LocationBody   Location = "body"
	LocationHeader Location = "header"
)

// Options are the raw registration options. Start from DefaultOptions and
// override what you need, or load a YAML document with LoadOptions.
type Options struct {
	Query   QueryOptions   `yaml:"query"`
	Meta    MetaOptions    `yaml:"meta"`
	Results ResultsOptions `yaml:"results"`
	Reply   ReplyOptions   `yaml:"reply"`
	Routes  RoutesOptions  `yaml:"routes"`
}

type QueryOptions struct {
	Page       PageParam     `yaml:"page"`
	Limit      LimitParam    `yaml:"limit"`
	Pagination FlagParam     `yaml:"pagination"`
	Invalid    InvalidPolicy `yaml:"invalid" validate:"oneof=defaults badRequest"`
}

type PageParam struct {
	Name    string `yaml:"name" validate:"required"`
	Default int    `yaml:"default"`
}

type LimitParam struct {
	Name    string `yaml:"name" validate:"required"`
	Default int    `yaml:"default" validate:"gt=0"`
}

// FlagParam is the boolean query flag that switches pagination on or off per request.
// The flag is only read from the query string when Active is set.
type FlagParam struct {
	Name    string `yaml:"name" validate:"required"`
	Default bool   `yaml:"default"`
	Active  bool   `yaml:"active"`
}

type MetaOptions struct {
	Location          Location `yaml:"location" validate:"oneof=body header"`
	SuccessStatusCode *int     `yaml:"successStatusCode" validate:"omitempty,gte=200,lt=300"`
	BaseURI           string   `yaml:"baseUri" validate:"omitempty,url"`
	Name              string   `yaml:"name" validate:"required"`

	Count       Field `yaml:"count"`
	TotalCount  Field `yaml:"totalCount"`
	PageCount   Field `yaml:"pageCount"`
	Self        Field `yaml:"self"`
	Previous    Field `yaml:"previous"`
	Next        Field `yaml:"next"`
	HasNext     Field `yaml:"hasNext"`
	HasPrevious Field `yaml:"hasPrevious"`
	First       Field `yaml:"first"`
	Last        Field `yaml:"last"`

	// Page and Limit echo the resolved values under the query parameter names.
	Page  Toggle `yaml:"page"`
	Limit Toggle `yaml:"limit"`
}

// Field describes one metadata entry. Inactive fields are omitted from the output.
type Field struct {
	Active bool   `yaml:"active"`
	Name   string `yaml:"name" validate:"required"`
}

type Toggle struct {
	Active bool `yaml:"active"`
}

type ResultsOptions struct {
	Name string `yaml:"name" validate:"required"`
}

// ReplyOptions name the per-request helper state and the fields read from
// keyed handler results.
type ReplyOptions struct {
	Paginate   string          `yaml:"paginate" validate:"required"`
	Parameters ReplyParameters `yaml:"parameters"`
}

type ReplyParameters struct {
	Results    NamedParam `yaml:"results"`
	TotalCount NamedParam `yaml:"totalCount"`
}

type NamedParam struct {
	Name string `yaml:"name" validate:"required"`
}

// RoutesOptions select the routes that take part in pagination.
// Entries are literal route paths, or regular expressions prefixed with "re:".
// Settings hold per-route overrides keyed by "METHOD /path" or "/path".
type RoutesOptions struct {
	Include  []string                 `yaml:"include"`
	Exclude  []string                 `yaml:"exclude"`
	Settings map[string]RouteOverride `yaml:"settings" validate:"dive"`
}

// RouteOverride is attached to a single route. Enabled forces inclusion or
// exclusion regardless of the include/exclude lists.
type RouteOverride struct {
	Enabled  *bool         `yaml:"enabled"`
	Defaults RouteDefaults `yaml:"defaults"`
}

type RouteDefaults struct {
	Page       *int  `yaml:"page" validate:"omitempty,gt=0"`
	Limit      *int  `yaml:"limit" validate:"omitempty,gt=0"`
	Pagination *bool `yaml:"pagination"`
}

// DefaultOptions returns the built-in options.
func DefaultOptions() Options {
	return Options{
		Query: QueryOptions{
			Page:       PageParam{Name: DefaultPageName, Default: DefaultPage},
			Limit:      LimitParam{Name: DefaultLimitName, Default: DefaultLimit},
			Pagination: FlagParam{Name: DefaultPaginationName, Default: true, Active: true},
			Invalid:    InvalidDefaults,
		},
		Meta: MetaOptions{
			Location:    LocationBody,
			Name:        DefaultMetaName,
			Count:       Field{Active: true, Name: "count"},
			TotalCount:  Field{Active: true, Name: "totalCount"},
			PageCount:   Field{Active: true, Name: "pageCount"},
			Self:        Field{Active: true, Name: "self"},
			Previous:    Field{Active: true, Name: "previous"},
			Next:        Field{Active: true, Name: "next"},
			HasNext:     Field{Active: false, Name: "hasNext"},
			HasPrevious: Field{Active: false, Name: "hasPrevious"},
			First:       Field{Active: true, Name: "first"},
			Last:        Field{Active: true, Name: "last"},
		},
		Results: ResultsOptions{Name: DefaultResultsName},
		Reply: ReplyOptions{
			Paginate: DefaultReplyName,
			Parameters: ReplyParameters{
				Results:    NamedParam{Name: "results"},
				TotalCount: NamedParam{Name: "totalCount"},
			},
		},
		Routes: RoutesOptions{
			Include: []string{WildcardRoute},
			Exclude: []string{},
		},
	}
}

// Bool and Int return pointers for RouteOverride literals.
func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }
