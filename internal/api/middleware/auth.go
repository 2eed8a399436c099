package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// UserKey is the echo context key holding the authenticated *domain.User.
const UserKey = "user"

// InactivePolicy decides how optional authentication treats an inactive account.
type InactivePolicy string

const (
	InactiveAnonymous InactivePolicy = "anonymous"
	InactiveReject    InactivePolicy = "reject"
)

// TokenResolver maps a bearer token to its user.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}

// Auth requires a valid bearer token for an existing, active user.
func Auth(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return domain.ErrUnauthenticated
			}

			user, err := resolver.ResolveToken(c.Request().Context(), token)
			if err != nil {
				return err
			}
			if !user.IsActive {
				return domain.ErrInactiveUser
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves the caller when a usable token is present and lets the
// request through anonymously otherwise. Inactive users are either treated as
// anonymous or rejected, depending on policy.
func OptionalAuth(resolver TokenResolver, policy InactivePolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			user, err := resolver.ResolveToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return next(c)
				}
				return err
			}
			if !user.IsActive {
				if policy == InactiveReject {
					return domain.ErrInactiveUser
				}
				return next(c)
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user set by Auth or OptionalAuth, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(UserKey).(*domain.User)
	return u
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
