package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// UserRepository is the user store: a sequentially keyed collection with
// unique email and username indexes.
type UserRepository interface {
	// Create assigns the next id and indexes the user. Returns
	// domain.ErrEmailTaken or domain.ErrUsernameTaken on collision.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update applies patch and moves index entries atomically.
	Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	// Delete removes the user from the primary store and both indexes.
	Delete(ctx context.Context, id int64) error
	// List returns users in insertion order.
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
