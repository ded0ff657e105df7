package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func TestLogger(t *testing.T) {
	buf := captureLogs(t)

	e := echo.New()
	e.Use(Logger(WithSkipper(SkipPaths("/health"))))
	e.GET("/articles/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/broken", func(c echo.Context) error {
		return errors.New("boom")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for _, target := range []string{"/articles/42", "/broken", "/health"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	out := buf.String()
	assert.Contains(t, out, "msg=REQUEST ")
	assert.Contains(t, out, "route=/articles/:id")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "msg=REQUEST_ERROR")
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "uri=/health")
}
