package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error, debug bool) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	NewHTTPErrorHandler(zerolog.Nop(), debug)(err, c)
	return rec
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInactiveUser, http.StatusBadRequest},
		{fmt.Errorf("update user 2: %w", domain.ErrForbidden), http.StatusForbidden},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrUsernameTaken, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrItemNotFound, http.StatusNotFound},
		{domain.NewValidationError([]string{"body", "price"}, "bad"), http.StatusUnprocessableEntity},
		{echo.ErrNotFound, http.StatusNotFound},
		{echo.ErrTooManyRequests, http.StatusTooManyRequests},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := runErrorHandler(t, tc.err, false)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_UnauthorizedChallenge(t *testing.T) {
	rec := runErrorHandler(t, domain.ErrUnauthenticated, false)
	if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate Bearer, got %q", got)
	}
}

func TestHTTPErrorHandler_ValidationDetail(t *testing.T) {
	rec := runErrorHandler(t, domain.NewValidationError([]string{"body", "price"}, "Price must be greater than 0"), false)

	var body struct {
		Error  string             `json:"error"`
		Detail []domain.Violation `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Detail) != 1 || body.Detail[0].Loc[1] != "price" || body.Detail[0].Type != "value_error" {
		t.Fatalf("unexpected detail: %+v", body.Detail)
	}
}

func TestHTTPErrorHandler_HidesInternalsUnlessDebug(t *testing.T) {
	var body map[string]string

	rec := runErrorHandler(t, errors.New("db exploded"), false)
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "internal server error" {
		t.Fatalf("expected generic message, got %q", body["error"])
	}

	rec = runErrorHandler(t, errors.New("db exploded"), true)
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "db exploded" {
		t.Fatalf("expected real message in debug, got %q", body["error"])
	}
}
