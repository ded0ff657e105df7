package pagination_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/echo-paginate/pkg/pagination"
)

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func users(n int) []user {
	out := make([]user, n)
	for i := range out {
		out[i] = user{ID: i + 1, Name: "user-" + strconv.Itoa(i+1)}
	}
	return out
}

type envelope struct {
	Meta    map[string]any    `json:"meta"`
	Results []json.RawMessage `json:"results"`
}

// listUsers pages over source and reports its size through the side channel.
func listUsers(source []user) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok := pagination.ParamsFrom(c)
		if !ok || !p.Enabled {
			return c.JSON(http.StatusOK, source)
		}
		pagination.SetTotalCount(c, int64(len(source)))
		return c.JSON(http.StatusOK, window(source, p.Offset(), p.Limit))
	}
}

func window(source []user, offset, limit int) []user {
	if offset >= len(source) {
		return []user{}
	}
	end := offset + limit
	if end > len(source) {
		end = len(source)
	}
	return source[offset:end]
}

func newEcho(t *testing.T, opts pagination.Options, routes func(e *echo.Echo)) *echo.Echo {
	t.Helper()
	e := echo.New()
	routes(e)

	p, err := pagination.New(opts)
	require.NoError(t, err)
	require.NoError(t, p.Register(e))
	return e
}

func serve(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestMiddleware_SecondPage(t *testing.T) {
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/users", listUsers(users(20)))
	})

	rec := serve(e, http.MethodGet, "/users?page=2&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Len(t, env.Results, 5)
	assert.JSONEq(t, `{"id":6,"name":"user-6"}`, string(env.Results[0]))

	assert.EqualValues(t, 5, env.Meta["count"])
	assert.EqualValues(t, 20, env.Meta["totalCount"])
	assert.EqualValues(t, 4, env.Meta["pageCount"])
	assert.Equal(t, "http://example.com/users?page=2&limit=5", env.Meta["self"])
	assert.Equal(t, "http://example.com/users?page=1&limit=5", env.Meta["first"])
	assert.Equal(t, "http://example.com/users?page=1&limit=5", env.Meta["previous"])
	assert.Equal(t, "http://example.com/users?page=3&limit=5", env.Meta["next"])
	assert.Equal(t, "http://example.com/users?page=4&limit=5", env.Meta["last"])
	assert.NotContains(t, env.Meta, "hasNext")
}

func TestMiddleware_EmptySourceUnknownTotal(t *testing.T) {
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/", func(c echo.Context) error {
			return c.JSON(http.StatusOK, []user{})
		})
	})

	rec := serve(e, http.MethodGet, "/?")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Empty(t, env.Results)
	assert.EqualValues(t, 0, env.Meta["count"])

	for _, field := range []string{"totalCount", "pageCount", "previous", "next", "last"} {
		v, ok := env.Meta[field]
		assert.True(t, ok, field)
		assert.Nil(t, v, field)
	}
	assert.Equal(t, "http://example.com/?limit=25&page=1", env.Meta["self"])
	assert.Equal(t, env.Meta["self"], env.Meta["first"])
}

func TestMiddleware_InvalidLimit(t *testing.T) {
	tests := []struct {
		name      string
		policy    pagination.InvalidPolicy
		wantCode  int
		wantLimit float64
	}{
		{name: "bad request policy", policy: pagination.InvalidBadRequest, wantCode: http.StatusBadRequest},
		{name: "defaults policy", policy: pagination.InvalidDefaults, wantCode: http.StatusOK, wantLimit: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := pagination.DefaultOptions()
			opts.Query.Invalid = tt.policy
			opts.Meta.Limit.Active = true

			handled := false
			e := newEcho(t, opts, func(e *echo.Echo) {
				e.GET("/users", func(c echo.Context) error {
					handled = true
					assert.Equal(t, "25", c.QueryParam("limit"))
					return c.JSON(http.StatusOK, users(3))
				})
			})

			rec := serve(e, http.MethodGet, "/users?limit=abc10")
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			if tt.wantCode == http.StatusBadRequest {
				assert.False(t, handled)
				assert.Contains(t, rec.Body.String(), "Invalid limit")
				return
			}
			env := decodeEnvelope(t, rec)
			assert.Equal(t, tt.wantLimit, env.Meta["limit"])
		})
	}
}

func TestMiddleware_HandlerSeesResolvedQuery(t *testing.T) {
	opts := pagination.DefaultOptions()
	opts.Routes.Settings = map[string]pagination.RouteOverride{
		"/users": {Defaults: pagination.RouteDefaults{Limit: pagination.Int(10)}},
	}

	var seen map[string][]string
	e := newEcho(t, opts, func(e *echo.Echo) {
		e.GET("/users", func(c echo.Context) error {
			seen = c.QueryParams()
			return c.JSON(http.StatusOK, users(1))
		})
	})

	rec := serve(e, http.MethodGet, "/users?pagination=true&sort=name")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{"1"}, seen["page"])
	assert.Equal(t, []string{"10"}, seen["limit"])
	assert.Equal(t, []string{"name"}, seen["sort"])
	assert.NotContains(t, seen, "pagination")
}

func TestMiddleware_PaginationDisabledByClient(t *testing.T) {
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/users", listUsers(users(30)))
	})

	rec := serve(e, http.MethodGet, "/users?pagination=false&limit=abc")
	require.Equal(t, http.StatusOK, rec.Code)

	var all []user
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 30)
}

func TestMiddleware_BypassIsByteIdentical(t *testing.T) {
	opts := pagination.DefaultOptions()
	opts.Routes.Exclude = []string{"/users/:id"}

	routes := func(e *echo.Echo) {
		e.POST("/users", func(c echo.Context) error {
			c.Response().Header().Set("X-Trace", "abc")
			return c.JSON(http.StatusCreated, users(2))
		})
		e.GET("/users/:id", func(c echo.Context) error {
			return c.JSON(http.StatusOK, users(1)[0])
		})
		e.GET("/broken", func(c echo.Context) error {
			return c.JSON(http.StatusTeapot, users(2))
		})
		e.GET("/text", func(c echo.Context) error {
			return c.String(http.StatusOK, "plain")
		})
	}

	plain := echo.New()
	routes(plain)
	paginated := newEcho(t, opts, routes)

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/users?page=2"},
		{http.MethodGet, "/users/1"},
		{http.MethodGet, "/broken?limit=2"},
		{http.MethodGet, "/text"},
	} {
		t.Run(tc.method+" "+tc.target, func(t *testing.T) {
			want := serve(plain, tc.method, tc.target)
			got := serve(paginated, tc.method, tc.target)

			assert.Equal(t, want.Code, got.Code)
			assert.Equal(t, want.Body.String(), got.Body.String())
			assert.Equal(t, want.Header(), got.Header())
		})
	}
}

func TestMiddleware_HandlerErrorPropagates(t *testing.T) {
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/users", func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "storage down")
		})
	})

	rec := serve(e, http.MethodGet, "/users")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "storage down")
	assert.NotContains(t, rec.Body.String(), "meta")
}

func TestMiddleware_ReplyWithKeyKeepsPassthrough(t *testing.T) {
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/feed", func(c echo.Context) error {
			payload := map[string]any{
				"rows":     users(3),
				"otherKey": "x",
				"meta":     "clobber",
			}
			return pagination.Reply(c, payload, 3, pagination.WithKey("rows"))
		})
	})

	rec := serve(e, http.MethodGet, "/feed")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "x", body["otherKey"])
	assert.NotContains(t, body, "rows")
	assert.Len(t, body["results"], 3)

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, meta["totalCount"])
}

func TestMiddleware_ReplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		opts    []pagination.ReplyOption
	}{
		{name: "object without key", payload: map[string]any{"rows": users(1)}},
		{name: "missing key", payload: map[string]any{"rows": users(1)}, opts: []pagination.ReplyOption{pagination.WithKey("data")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
				e.GET("/feed", func(c echo.Context) error {
					return pagination.Reply(c, tt.payload, pagination.UnknownTotal, tt.opts...)
				})
			})

			rec := serve(e, http.MethodGet, "/feed")
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
		})
	}
}

func TestMiddleware_ReplyWithoutPaginator(t *testing.T) {
	e := echo.New()
	e.GET("/feed", func(c echo.Context) error {
		return pagination.Reply(c, users(2), 2, pagination.WithStatus(http.StatusAccepted))
	})

	rec := serve(e, http.MethodGet, "/feed")
	assert.Equal(t, http.StatusAccepted, rec.Code)

	var got []user
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, users(2), got)
}

func TestMiddleware_InvalidResultShape(t *testing.T) {
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/users", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]string{"data": "nope"})
		})
	})

	rec := serve(e, http.MethodGet, "/users")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMiddleware_HeaderLocation(t *testing.T) {
	opts := pagination.DefaultOptions()
	opts.Meta.Location = pagination.LocationHeader

	source := users(20)
	e := newEcho(t, opts, func(e *echo.Echo) {
		e.GET("/users", func(c echo.Context) error {
			p, _ := pagination.ParamsFrom(c)
			c.Response().Header().Set(pagination.TotalCountHeader, strconv.Itoa(len(source)))
			c.Response().Header().Set("X-Request-Source", "test")
			return c.JSON(http.StatusOK, window(source, p.Offset(), p.Limit))
		})
	})

	rec := serve(e, http.MethodGet, "/users?page=2&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "5-9/20", rec.Header().Get("Content-Range"))
	assert.Empty(t, rec.Header().Get(pagination.TotalCountHeader))
	assert.Equal(t, "test", rec.Header().Get("X-Request-Source"))

	links := strings.Split(rec.Header().Get("Link"), ", ")
	require.Len(t, links, 5)
	for i, rel := range []string{"self", "first", "last", "next", "prev"} {
		assert.True(t, strings.HasSuffix(links[i], `rel="`+rel+`"`), links[i])
	}

	var got []user
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, source[5:10], got)
}

func TestMiddleware_BaseURIAndSuccessStatus(t *testing.T) {
	opts := pagination.DefaultOptions()
	opts.Meta.BaseURI = "https://api.example.com/"
	opts.Meta.SuccessStatusCode = pagination.Int(206)

	e := newEcho(t, opts, func(e *echo.Echo) {
		e.GET("/users", listUsers(users(3)))
	})

	rec := serve(e, http.MethodGet, "/users")
	require.Equal(t, http.StatusPartialContent, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "https://api.example.com/users?limit=25&page=1", env.Meta["self"])
}

func TestMiddleware_InstancesAreIsolated(t *testing.T) {
	first := pagination.DefaultOptions()

	second := pagination.DefaultOptions()
	second.Meta.Name = "info"
	second.Results.Name = "items"
	second.Query.Limit.Default = 2

	routes := func(e *echo.Echo) {
		e.GET("/users", listUsers(users(4)))
	}
	a := newEcho(t, first, routes)
	b := newEcho(t, second, routes)

	recA := serve(a, http.MethodGet, "/users")
	recB := serve(b, http.MethodGet, "/users")

	var bodyA, bodyB map[string]any
	require.NoError(t, json.Unmarshal(recA.Body.Bytes(), &bodyA))
	require.NoError(t, json.Unmarshal(recB.Body.Bytes(), &bodyB))

	assert.Contains(t, bodyA, "meta")
	assert.Len(t, bodyA["results"], 4)
	assert.NotContains(t, bodyA, "info")

	assert.Contains(t, bodyB, "info")
	assert.Len(t, bodyB["items"], 2)
	assert.NotContains(t, bodyB, "meta")
}

func TestPaginator_RegisterTwice(t *testing.T) {
	p, err := pagination.New(pagination.DefaultOptions())
	require.NoError(t, err)

	e := echo.New()
	require.NoError(t, p.Register(e))
	assert.Error(t, p.Register(e))
	assert.NotEqual(t, p.ID().String(), "")
}

func TestNew_InvalidOptions(t *testing.T) {
	opts := pagination.DefaultOptions()
	opts.Query.Limit.Default = 0

	p, err := pagination.New(opts)
	assert.Nil(t, p)

	var cve *pagination.ConfigValidationError
	assert.ErrorAs(t, err, &cve)
}

func TestMiddleware_RouteDefaultOffLinksRoundTrip(t *testing.T) {
	opts := pagination.DefaultOptions()
	opts.Routes.Settings = map[string]pagination.RouteOverride{
		"/users": {Defaults: pagination.RouteDefaults{Pagination: pagination.Bool(false)}},
	}
	e := newEcho(t, opts, func(e *echo.Echo) {
		e.GET("/users", listUsers(users(20)))
	})

	var all []user
	rec := serve(e, http.MethodGet, "/users")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 20)

	env := decodeEnvelope(t, serve(e, http.MethodGet, "/users?pagination=true&limit=5"))
	next, ok := env.Meta["next"].(string)
	require.True(t, ok)
	assert.Equal(t, "http://example.com/users?pagination=true&limit=5&page=2", next)

	rec = serve(e, http.MethodGet, strings.TrimPrefix(next, "http://example.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec)
	require.Len(t, env.Results, 5)
	assert.JSONEq(t, `{"id":6,"name":"user-6"}`, string(env.Results[0]))
	assert.Equal(t, "http://example.com/users?pagination=true&limit=5&page=3", env.Meta["next"])
}

func TestMiddleware_InactiveFlagIsLeftToHandler(t *testing.T) {
	opts := pagination.DefaultOptions()
	opts.Query.Pagination.Active = false

	var seen string
	e := newEcho(t, opts, func(e *echo.Echo) {
		e.GET("/users", func(c echo.Context) error {
			seen = c.QueryParam("pagination")
			return c.JSON(http.StatusOK, users(3))
		})
	})

	env := decodeEnvelope(t, serve(e, http.MethodGet, "/users?pagination=false"))
	assert.Equal(t, "false", seen)
	assert.Len(t, env.Results, 3)
}

func TestMiddleware_StreamingResponsesPassThrough(t *testing.T) {
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/upgrade", func(c echo.Context) error {
			c.Response().WriteHeader(http.StatusSwitchingProtocols)
			return nil
		})
		e.GET("/stream", func(c echo.Context) error {
			res := c.Response()
			res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			res.WriteHeader(http.StatusOK)
			if _, err := res.Write([]byte(`[{"id":1},`)); err != nil {
				return err
			}
			res.Flush()
			_, err := res.Write([]byte(`{"id":2}]`))
			return err
		})
	})

	t.Run("informational status", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/upgrade")
		assert.Equal(t, http.StatusSwitchingProtocols, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("flushed body", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/stream?limit=1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, rec.Flushed)
		assert.Equal(t, `[{"id":1},{"id":2}]`, rec.Body.String())
	})
}

func TestMiddleware_FailedHijackKeepsPagination(t *testing.T) {
	var hijackErr error
	e := newEcho(t, pagination.DefaultOptions(), func(e *echo.Echo) {
		e.GET("/users", func(c echo.Context) error {
			_, _, hijackErr = c.Response().Hijack()
			pagination.SetTotalCount(c, 3)
			return c.JSON(http.StatusOK, users(3))
		})
	})

	rec := serve(e, http.MethodGet, "/users")
	require.Error(t, hijackErr)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Len(t, env.Results, 3)
	assert.EqualValues(t, 3, env.Meta["totalCount"])
}
