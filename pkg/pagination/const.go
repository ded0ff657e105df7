package pagination

// Query parameter defaults
const (
	DefaultPageName       = "page"
	DefaultPage           = 1
	DefaultLimitName      = "limit"
	DefaultLimit          = 25
	DefaultPaginationName = "pagination"
)

// Output defaults
const (
	DefaultMetaName    = "meta"
	DefaultResultsName = "results"
	DefaultReplyName   = "paginate"

	// TotalCountHeader is the side-channel header a handler may set in header mode.
	TotalCountHeader = "Total-Count"
)

// WildcardRoute in routes.include enables every GET route.
const WildcardRoute = "*"

// patternPrefix marks a route entry as a regular expression.
const patternPrefix = "re:"

// UnknownTotal tells Reply that the handler has no total count.
const UnknownTotal int64 = -1
