package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestProcessTime_SetsHeader(t *testing.T) {
	e := echo.New()
	e.Use(ProcessTime())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	v := rec.Header().Get(HeaderProcessTime)
	if v == "" {
		t.Fatalf("expected %s header", HeaderProcessTime)
	}
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		t.Fatalf("header is not a float: %q", v)
	}
}

func TestRequestLogger_WritesEvent(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	out := buf.String()
	if !strings.Contains(out, `"uri":"/ping"`) || !strings.Contains(out, `"status":204`) {
		t.Fatalf("unexpected access log: %s", out)
	}
}
