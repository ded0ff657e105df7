package pagination

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config is the validated configuration snapshot of one Paginator.
// It is read-only once Resolve returns.
type Config struct {
	Query   QueryOptions
	Meta    MetaOptions
	Results ResultsOptions
	Reply   ReplyOptions

	Include []Matcher
	Exclude []Matcher

	// BaseURI is meta.baseUri without a trailing slash. Empty means the base
	// is taken from the incoming request.
	BaseURI string

	includeAll bool
	overrides  map[string]RouteOverride
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Resolve validates opts and freezes them into a Config.
// Every violation is reported as a *ConfigValidationError.
func Resolve(opts Options) (*Config, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if opts.Meta.Name == opts.Results.Name {
		return nil, newConfigError("results.name", "must differ from meta.name")
	}

	include, includeAll, err := compileMatchers("routes.include", opts.Routes.Include)
	if err != nil {
		return nil, err
	}
	exclude, _, err := compileMatchers("routes.exclude", opts.Routes.Exclude)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Query:      opts.Query,
		Meta:       opts.Meta,
		Results:    opts.Results,
		Reply:      opts.Reply,
		Include:    include,
		Exclude:    exclude,
		BaseURI:    strings.TrimRight(opts.Meta.BaseURI, "/"),
		includeAll: includeAll,
		overrides:  make(map[string]RouteOverride, len(opts.Routes.Settings)),
	}
	if opts.Meta.SuccessStatusCode != nil {
		code := *opts.Meta.SuccessStatusCode
		cfg.Meta.SuccessStatusCode = &code
	}
	for key, ov := range opts.Routes.Settings {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, newConfigError("routes.settings", "route key must not be empty")
		}
		cfg.overrides[key] = ov.clone()
	}

	return cfg, nil
}

func validateOptions(opts Options) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return wrapConfigError("", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Options.")
		errs = append(errs, newConfigError(field, ruleMessage(fe)))
	}
	return errors.Join(errs...)
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be a non-empty string"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), fe.Value())
	case "gte", "lt":
		return fmt.Sprintf("must be in [200,300), got %v", fe.Value())
	case "url":
		return fmt.Sprintf("must be an absolute URL, got %v", fe.Value())
	default:
		return fmt.Sprintf("failed %q rule", fe.Tag())
	}
}

// Override returns the settings attached to a route, looked up by
// "METHOD /path" first and by "/path" second.
func (c *Config) Override(method, path string) RouteOverride {
	if ov, ok := c.overrides[method+" "+path]; ok {
		return ov
	}
	return c.overrides[path]
}

// OverrideKeys lists the configured route setting keys.
func (c *Config) OverrideKeys() []string {
	keys := make([]string, 0, len(c.overrides))
	for k := range c.overrides {
		keys = append(keys, k)
	}
	return keys
}

// SuccessStatus applies the successStatusCode override to status.
func (c *Config) SuccessStatus(status int) int {
	if c.Meta.SuccessStatusCode != nil {
		return *c.Meta.SuccessStatusCode
	}
	return status
}

func (o RouteOverride) clone() RouteOverride {
	out := RouteOverride{}
	if o.Enabled != nil {
		out.Enabled = Bool(*o.Enabled)
	}
	if o.Defaults.Page != nil {
		out.Defaults.Page = Int(*o.Defaults.Page)
	}
	if o.Defaults.Limit != nil {
		out.Defaults.Limit = Int(*o.Defaults.Limit)
	}
	if o.Defaults.Pagination != nil {
		out.Defaults.Pagination = Bool(*o.Defaults.Pagination)
	}
	return out
}
