package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// Superuser must run after Auth. It rejects callers without the superuser flag.
func Superuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrUnauthenticated
			}
			if !user.IsSuperuser {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
