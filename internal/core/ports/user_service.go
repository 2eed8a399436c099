package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// UpdateUserInput is a user patch plus who is asking.
type UpdateUserInput struct {
	ID    int64
	Actor *domain.User
	Patch domain.UserPatch
}

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
}
