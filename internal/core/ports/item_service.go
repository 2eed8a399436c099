package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// CreateItemInput carries the fields of a new item. Price is rounded by the service.
type CreateItemInput struct {
	Title       string
	Description *string
	Price       float64
	Status      domain.ItemStatus // empty means active
	OwnerID     int64
}

// ListItemsInput selects one page of items.
type ListItemsInput struct {
	Page    int // 1-based
	Size    int
	Status  domain.ItemStatus
	OwnerID int64
}

// ListItemsResult is one page plus pagination totals.
type ListItemsResult struct {
	Items []*domain.Item
	Total int64
	Page  int
	Size  int
	Pages int
}

type ItemService interface {
	Create(ctx context.Context, input CreateItemInput) (*domain.Item, error)
	Get(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context, input ListItemsInput) (*ListItemsResult, error)
	Update(ctx context.Context, id, actorID int64, patch domain.ItemPatch) (*domain.Item, error)
	Delete(ctx context.Context, id, actorID int64) error
}
