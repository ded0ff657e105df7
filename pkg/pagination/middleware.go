package pagination

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Paginator owns one Config and paginates the routes of one echo instance.
type Paginator struct {
	id         uuid.UUID
	cfg        *Config
	key        string
	registered bool
}

// requestState lives in the echo context for the duration of one request.
type requestState struct {
	params   Params
	override RouteOverride
	total    *int64
	reply    *replyState
}

// New resolves opts and returns a Paginator ready to be registered.
func New(opts Options) (*Paginator, error) {
	cfg, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Paginator{
		id:  uuid.New(),
		cfg: cfg,
		key: cfg.Reply.Paginate,
	}, nil
}

func (p *Paginator) ID() uuid.UUID { return p.id }

func (p *Paginator) Config() *Config { return p.cfg }

// Register installs the middleware on e. A Paginator can be registered once;
// route settings that name no route of e are reported as warnings.
func (p *Paginator) Register(e *echo.Echo) error {
	if p.registered {
		return errors.New("pagination: paginator already registered")
	}
	p.registered = true

	known := make(map[string]bool)
	for _, r := range e.Routes() {
		known[r.Method+" "+r.Path] = true
		known[r.Path] = true
	}
	for _, key := range p.cfg.OverrideKeys() {
		if !known[key] {
			slog.Warn("Pagination settings reference an unknown route", "paginator", p.id, "route", key)
		}
	}

	e.Use(p.Middleware())

	slog.Info("Pagination registered",
		"paginator", p.id,
		"location", p.cfg.Meta.Location,
		"invalid", p.cfg.Query.Invalid,
		"base_uri", p.cfg.BaseURI,
	)
	return nil
}

// Middleware resolves the pagination parameters before the handler runs and
// reshapes the handler result afterwards.
func (p *Paginator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route := c.Path()

			if !p.cfg.IsPaginated(req.Method, route) {
				return next(c)
			}

			ov := p.cfg.Override(req.Method, route)
			query := c.QueryParams()

			params := Params{Enabled: p.cfg.ResolvePagination(query, ov)}
			if params.Enabled {
				page, limit, err := p.cfg.ResolvePageAndLimit(query, ov)
				if err != nil {
					slog.Debug("Rejected pagination input", "route", route, "error", err)
					return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
				}
				params.Page, params.Limit = page, limit
			}
			p.cfg.applyToQuery(query, params, ov)

			st := &requestState{params: params, override: ov}
			c.Set(p.key, st)

			if !params.Enabled {
				return next(c)
			}

			res := c.Response()
			original := res.Writer
			cw := newCaptureWriter(original)
			res.Writer = cw

			err := next(c)

			res.Writer = original
			if cw.passthrough {
				return err
			}
			return p.finish(c, st, cw, err)
		}
	}
}

func (p *Paginator) finish(c echo.Context, st *requestState, cw *captureWriter, handlerErr error) error {
	res := c.Response()

	if handlerErr != nil {
		if cw.empty() {
			return handlerErr
		}
		if err := cw.release(); err != nil {
			return errors.Join(handlerErr, err)
		}
		return handlerErr
	}

	x := Exchange{
		Params:     st.params,
		BaseURI:    p.baseURI(c),
		Path:       c.Request().URL.EscapedPath(),
		RawQuery:   c.Request().URL.RawQuery,
		Header:     res.Header(),
		TotalCount: st.total,
		Override:   st.override,
	}

	switch {
	case st.reply != nil:
		x.Status, x.Body, x.Key = st.reply.status, st.reply.body, st.reply.key
		if !isSuccess(x.Status) {
			return writeJSON(res, x.Status, x.Body)
		}

	case cw.empty():
		return nil

	default:
		if !isSuccess(cw.status) || !isJSON(res.Header()) {
			return cw.release()
		}
		body, err := decodeJSON(cw.buf.Bytes())
		if err != nil {
			res.Committed = false
			shapeErr := &InvalidResultShapeError{Reason: "the response body is not valid JSON", Err: err}
			return echo.NewHTTPError(http.StatusInternalServerError, shapeErr.Error()).SetInternal(shapeErr)
		}
		x.Status, x.Body = cw.status, body
	}

	shaped, err := p.cfg.Shape(x)
	if err != nil {
		res.Committed = false
		slog.Error("Failed to paginate response", "paginator", p.id, "route", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}

	slog.LogAttrs(context.Background(), slog.LevelDebug, "Paginated response",
		slog.String("route", c.Path()),
		slog.Int("page", st.params.Page),
		slog.Int("limit", st.params.Limit),
		slog.Int("status", shaped.Status),
	)
	return writeJSON(res, shaped.Status, shaped.Body)
}

// baseURI is the configured base or the scheme and host the request reached.
func (p *Paginator) baseURI(c echo.Context) string {
	if p.cfg.BaseURI != "" {
		return p.cfg.BaseURI
	}
	return c.Scheme() + "://" + c.Request().Host
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func isJSON(h http.Header) bool {
	mt, _, err := mime.ParseMediaType(h.Get(echo.HeaderContentType))
	if err != nil {
		return false
	}
	return mt == echo.MIMEApplicationJSON || strings.HasSuffix(mt, "+json")
}

func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// writeJSON writes straight to the underlying writer; the echo response was
// already committed while the handler wrote into the buffer.
func writeJSON(res *echo.Response, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		res.Committed = false
		return err
	}

	h := res.Header()
	h.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	h.Del(echo.HeaderContentLength)

	res.Writer.WriteHeader(status)
	n, err := res.Writer.Write(b)
	res.Status = status
	res.Size = int64(n)
	res.Committed = true
	return err
}
