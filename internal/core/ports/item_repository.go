package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// ItemFilter narrows list and count queries. Zero values mean "no filter".
type ItemFilter struct {
	Status  domain.ItemStatus
	OwnerID int64
	Skip    int
	Limit   int // ignored by Count; <= 0 means no limit
}

// ItemRepository is the item store.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	// List returns matching items newest first; equal timestamps keep insertion order.
	List(ctx context.Context, filter ItemFilter) ([]*domain.Item, error)
	Count(ctx context.Context, filter ItemFilter) (int64, error)
	// Update returns domain.ErrItemNotFound or domain.ErrForbidden when actorID
	// does not own the item.
	Update(ctx context.Context, id, actorID int64, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id, actorID int64) error
	// DeleteByOwner removes every item owned by ownerID and returns how many went.
	DeleteByOwner(ctx context.Context, ownerID int64) (int, error)
}
