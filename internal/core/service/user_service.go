package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

// DeletePolicy decides what happens to a deleted user's items.
type DeletePolicy string

const (
	DeleteOrphan  DeletePolicy = "orphan"
	DeleteCascade DeletePolicy = "cascade"
)

type UserService struct {
	users              ports.UserRepository
	items              ports.ItemRepository
	policy             DeletePolicy
	allowSelfElevation bool
	log                zerolog.Logger
}

func NewUserService(users ports.UserRepository, items ports.ItemRepository, policy DeletePolicy, allowSelfElevation bool, log zerolog.Logger) *UserService {
	if policy != DeleteCascade {
		policy = DeleteOrphan
	}
	return &UserService{
		users:              users,
		items:              items,
		policy:             policy,
		allowSelfElevation: allowSelfElevation,
		log:                log,
	}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies a partial update. A non-superuser actor may only grant
// itself superuser when self elevation is allowed.
func (s *UserService) Update(ctx context.Context, in ports.UpdateUserInput) (*domain.User, error) {
	patch := in.Patch
	if patch.Email != nil {
		email := NormalizeEmail(*patch.Email)
		patch.Email = &email
	}
	if patch.Username != nil {
		username := NormalizeUsername(*patch.Username)
		patch.Username = &username
	}

	if in.Actor != nil && !in.Actor.IsSuperuser && patch.IsSuperuser != nil && *patch.IsSuperuser && !s.allowSelfElevation {
		return nil, fmt.Errorf("update user %d: %w", in.ID, domain.ErrForbidden)
	}

	user, err := s.users.Update(ctx, in.ID, patch)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user and, under the cascade policy, every item it owns.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	ev := s.log.Info().Int64("user_id", id).Str("policy", string(s.policy))
	if s.policy == DeleteCascade {
		n, err := s.items.DeleteByOwner(ctx, id)
		if err != nil {
			return fmt.Errorf("delete items of user %d: %w", id, err)
		}
		ev = ev.Int("items_deleted", n)
	}
	ev.Msg("user deleted")
	return nil
}

// List returns users in insertion order.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]*domain.User, error) {
	return s.users.List(ctx, skip, limit)
}
