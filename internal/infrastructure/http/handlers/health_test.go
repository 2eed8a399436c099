package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(AppInfo{Name: "Catalog API", Version: "1.0.0"})
	rec := serve(t, h.Liveness)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusOK || body["status"] != "healthy" || body["app_name"] != "Catalog API" || body["version"] != "1.0.0" {
		t.Fatalf("unexpected liveness response %d: %v", rec.Code, body)
	}
	if _, ok := body["timestamp"]; !ok {
		t.Fatalf("expected timestamp")
	}
}

func TestHealthHandler_Root(t *testing.T) {
	h := NewHealthHandler(AppInfo{Name: "Catalog API", Version: "1.0.0", DocsURL: "/docs/index.html"})
	rec := serve(t, h.Root)

	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["docs_url"] != "/docs/index.html" || body["health_check"] != "/health" {
		t.Fatalf("unexpected root response: %v", body)
	}
}

func TestReadinessHandler(t *testing.T) {
	ok := func(n int64) Probe {
		return func(context.Context) (int64, error) { return n, nil }
	}

	rec := serve(t, NewReadinessHandler(map[string]Probe{"users": ok(1), "items": ok(3)}).Readiness)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Dependencies["items"].Count != 3 {
		t.Fatalf("unexpected readiness body: %+v", body)
	}

	failing := func(context.Context) (int64, error) { return 0, errors.New("stopped") }
	rec = serve(t, NewReadinessHandler(map[string]Probe{"users": ok(1), "hash_pool": failing}).Readiness)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
