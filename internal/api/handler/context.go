package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/api/middleware"
	"github.com/99minutos/catalog-api/internal/core/domain"
)

// ctxUser returns the caller set by the auth middleware. A missing user means
// the route was mounted without it, so fail as unauthenticated.
func ctxUser(c echo.Context) (*domain.User, error) {
	u := middleware.CurrentUser(c)
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	return u, nil
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.NewValidationError([]string{"path", "id"}, "value is not a valid integer")
	}
	return id, nil
}

// bindQuery fills q from the query string and validates it.
func bindQuery(c echo.Context, q any) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, q); err != nil {
		return domain.NewValidationError([]string{"query"}, "invalid query parameter")
	}
	return c.Validate(q)
}
