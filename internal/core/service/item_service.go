package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ItemService struct {
	repo ports.ItemRepository
	log  zerolog.Logger
}

func NewItemService(repo ports.ItemRepository, log zerolog.Logger) *ItemService {
	return &ItemService{repo: repo, log: log}
}

// Create stores a new item owned by input.OwnerID. The title is trimmed and
// the price rounded to two decimals; both must stay non-empty / positive.
func (s *ItemService) Create(ctx context.Context, in ports.CreateItemInput) (*domain.Item, error) {
	title := domain.NormalizeTitle(in.Title)
	if title == "" {
		return nil, domain.NewValidationError([]string{"body", "title"}, "Title cannot be empty")
	}
	price, err := normalizePrice(in.Price)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = domain.ItemActive
	}
	if !status.Valid() {
		return nil, invalidStatus()
	}

	item, err := s.repo.Create(ctx, &domain.Item{
		Title:       title,
		Description: in.Description,
		Price:       price,
		Status:      status,
		OwnerID:     in.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("item_id", item.ID).Int64("owner_id", item.OwnerID).Msg("item created")
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns one page, newest first, with pages = ceil(total/size) and at least 1.
func (s *ItemService) List(ctx context.Context, in ports.ListItemsInput) (*ports.ListItemsResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.Size
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	filter := ports.ItemFilter{
		Status:  in.Status,
		OwnerID: in.OwnerID,
		Skip:    (page - 1) * size,
		Limit:   size,
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListItemsResult{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: PageCount(total, size),
	}, nil
}

// Update applies patch when actorID owns the item. Owners have no superuser override.
func (s *ItemService) Update(ctx context.Context, id, actorID int64, patch domain.ItemPatch) (*domain.Item, error) {
	if patch.Title != nil {
		title := domain.NormalizeTitle(*patch.Title)
		if title == "" {
			return nil, domain.NewValidationError([]string{"body", "title"}, "Title cannot be empty")
		}
		patch.Title = &title
	}
	if patch.Price != nil {
		price, err := normalizePrice(*patch.Price)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, invalidStatus()
	}

	item, err := s.repo.Update(ctx, id, actorID, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("item_id", id).Int64("actor_id", actorID).Msg("item updated")
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, id, actorID int64) error {
	if err := s.repo.Delete(ctx, id, actorID); err != nil {
		return err
	}
	s.log.Info().Int64("item_id", id).Int64("actor_id", actorID).Msg("item deleted")
	return nil
}

// PageCount is ceil(total/size), never less than 1.
func PageCount(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

func normalizePrice(p float64) (float64, error) {
	rounded := domain.RoundPrice(p)
	if !domain.FinitePrice(rounded) {
		return 0, domain.NewValidationError([]string{"body", "price"}, "Price must be a finite number")
	}
	if p <= 0 || rounded <= 0 {
		return 0, domain.NewValidationError([]string{"body", "price"}, "Price must be greater than 0")
	}
	return rounded, nil
}

func invalidStatus() error {
	return &domain.ValidationError{Violations: []domain.Violation{{
		Loc:  []string{"body", "status"},
		Msg:  "status must be one of: active inactive archived",
		Type: "enum",
	}}}
}
