package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	FullName    *string
	IsActive    bool
	IsSuperuser bool
}

// AccessToken is returned by a successful login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresIn int64 // seconds
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*AccessToken, *domain.User, error)
	// Authenticate returns the user iff it exists, the password matches and it
	// is active. Every failure is domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	// ResolveToken maps a bearer token to its user. Fails with
	// domain.ErrUnauthenticated for bad tokens or unknown subjects.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}
