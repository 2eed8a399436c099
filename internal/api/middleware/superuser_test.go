package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

func TestSuperuser_Allows(t *testing.T) {
	c, rec := newContext("")
	c.Set(UserKey, &domain.User{ID: 1, IsActive: true, IsSuperuser: true})

	called := false
	handler := Superuser()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run with 200, got called=%v code=%d", called, rec.Code)
	}
}

func TestSuperuser_Forbids(t *testing.T) {
	c, _ := newContext("")
	c.Set(UserKey, &domain.User{ID: 2, IsActive: true})

	handler := Superuser()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSuperuser_WithoutUser(t *testing.T) {
	c, _ := newContext("")
	handler := Superuser()(func(c echo.Context) error { return nil })
	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
