package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/ports"
)

// ItemStore keeps items keyed by id. Owner ids are not checked against the user store.
type ItemStore struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	nextID int64
	now    func() time.Time
}

func NewItemStore() *ItemStore {
	return &ItemStore{
		items:  make(map[int64]*domain.Item),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *ItemStore) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := cloneItem(item)
	stored.ID = s.nextID
	s.nextID++
	now := s.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.items[stored.ID] = stored
	return cloneItem(stored), nil
}

func (s *ItemStore) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return cloneItem(it), nil
}

// List filters, sorts newest first and slices. Ties on CreatedAt keep id order.
func (s *ItemStore) List(_ context.Context, f ports.ItemFilter) ([]*domain.Item, error) {
	s.mu.RLock()
	matched := make([]*domain.Item, 0, len(s.items))
	for _, it := range s.items {
		if matches(it, f) {
			matched = append(matched, cloneItem(it))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, func(a, b *domain.Item) int { return cmp.Compare(a.ID, b.ID) })
	slices.SortStableFunc(matched, func(a, b *domain.Item) int { return b.CreatedAt.Compare(a.CreatedAt) })

	from, to := window(len(matched), f.Skip, f.Limit)
	return matched[from:to], nil
}

// Count applies the same predicate as List.
func (s *ItemStore) Count(_ context.Context, f ports.ItemFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, it := range s.items {
		if matches(it, f) {
			n++
		}
	}
	return n, nil
}

func matches(it *domain.Item, f ports.ItemFilter) bool {
	if f.Status != "" && it.Status != f.Status {
		return false
	}
	return f.OwnerID == 0 || it.OwnerID == f.OwnerID
}

// Update applies patch when actorID owns the item. UpdatedAt moves whenever the
// patch supplies a field, as for users.
func (s *ItemStore) Update(_ context.Context, id, actorID int64, patch domain.ItemPatch) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	if it.OwnerID != actorID {
		return nil, domain.ErrForbidden
	}
	if patch.Empty() {
		return cloneItem(it), nil
	}
	patch.Apply(it)
	it.UpdatedAt = s.now()
	return cloneItem(it), nil
}

func (s *ItemStore) Delete(_ context.Context, id, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return domain.ErrItemNotFound
	}
	if it.OwnerID != actorID {
		return domain.ErrForbidden
	}
	delete(s.items, id)
	return nil
}

func (s *ItemStore) DeleteByOwner(_ context.Context, ownerID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, it := range s.items {
		if it.OwnerID == ownerID {
			delete(s.items, id)
			n++
		}
	}
	return n, nil
}
