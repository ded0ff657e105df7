package pagination

import (
	"encoding/json"
	"net/http"
	"reflect"

	"github.com/labstack/echo/v4"
)

type replyState struct {
	body   any
	key    string
	status int
}

type replyConfig struct {
	key    string
	status int
}

// ReplyOption customises Reply.
type ReplyOption func(*replyConfig)

// WithKey names the field of an object payload that holds the results.
func WithKey(key string) ReplyOption {
	return func(rc *replyConfig) {
		rc.key = key
	}
}

// WithStatus sets the status code of the reply. Defaults to 200.
func WithStatus(code int) ReplyOption {
	return func(rc *replyConfig) {
		rc.status = code
	}
}

// Reply hands a result to the paginator registered under the default reply
// name. payload is a slice, or an object together with WithKey. totalCount is
// the size of the whole result set, or UnknownTotal.
func Reply(c echo.Context, payload any, totalCount int64, opts ...ReplyOption) error {
	return reply(c, DefaultReplyName, payload, totalCount, opts...)
}

// Reply is the package Reply bound to this paginator's reply name.
func (p *Paginator) Reply(c echo.Context, payload any, totalCount int64, opts ...ReplyOption) error {
	return reply(c, p.key, payload, totalCount, opts...)
}

func reply(c echo.Context, name string, payload any, totalCount int64, opts ...ReplyOption) error {
	rc := replyConfig{status: http.StatusOK}
	for _, opt := range opts {
		opt(&rc)
	}

	st, ok := c.Get(name).(*requestState)
	if !ok || !st.params.Enabled {
		return c.JSON(rc.status, payload)
	}

	body, err := packReply(payload, rc.key)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
	}

	if totalCount >= 0 {
		n := totalCount
		st.total = &n
	}
	st.reply = &replyState{body: body, key: rc.key, status: rc.status}
	return nil
}

// packReply checks the payload and converts it into the generic form the
// shaper works on.
func packReply(payload any, key string) (any, error) {
	isSlice := false
	if v := reflect.ValueOf(payload); v.IsValid() {
		k := v.Kind()
		isSlice = k == reflect.Slice || k == reflect.Array
	}
	if !isSlice && key == "" {
		return nil, newShapeError("missing results key for a %T payload", payload)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, &InvalidResultShapeError{Reason: "payload is not JSON serialisable", Err: err}
	}
	body, err := decodeJSON(b)
	if err != nil {
		return nil, &InvalidResultShapeError{Reason: "payload is not JSON serialisable", Err: err}
	}

	if isSlice {
		if body == nil {
			body = []any{}
		}
		return body, nil
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return nil, newShapeError("a payload with key %q must be an object, got %T", key, payload)
	}
	if _, ok := obj[key]; !ok {
		return nil, newShapeError("key %q does not exist on the payload", key)
	}
	return obj, nil
}

// SetTotalCount records the total item count for the current request under
// the default reply name.
func SetTotalCount(c echo.Context, n int64) {
	setTotal(c, DefaultReplyName, n)
}

// SetTotalCount records the total item count for the current request.
func (p *Paginator) SetTotalCount(c echo.Context, n int64) {
	setTotal(c, p.key, n)
}

func setTotal(c echo.Context, name string, n int64) {
	st, ok := c.Get(name).(*requestState)
	if !ok {
		return
	}
	if n < 0 {
		st.total = nil
		return
	}
	st.total = &n
}

// ParamsFrom returns the parameters resolved for the current request under
// the default reply name.
func ParamsFrom(c echo.Context) (Params, bool) {
	return paramsFrom(c, DefaultReplyName)
}

// Params returns the parameters this paginator resolved for the current request.
func (p *Paginator) Params(c echo.Context) (Params, bool) {
	return paramsFrom(c, p.key)
}

func paramsFrom(c echo.Context, name string) (Params, bool) {
	st, ok := c.Get(name).(*requestState)
	if !ok {
		return Params{}, false
	}
	return st.params, true
}
