package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// UserStore keeps users keyed by id with unique email and username indexes.
type UserStore struct {
	mu         sync.RWMutex
	users      map[int64]*domain.User
	byEmail    map[string]int64
	byUsername map[string]int64
	nextID     int64
	now        func() time.Time
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:      make(map[int64]*domain.User),
		byEmail:    make(map[string]int64),
		byUsername: make(map[string]int64),
		nextID:     1,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a copy of user under the next id. CreatedAt and UpdatedAt are
// stamped with the same instant.
func (s *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return nil, domain.ErrEmailTaken
	}
	if _, taken := s.byUsername[user.Username]; taken {
		return nil, domain.ErrUsernameTaken
	}

	stored := cloneUser(user)
	stored.ID = s.nextID
	s.nextID++
	now := s.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.users[stored.ID] = stored
	s.byEmail[stored.Email] = stored.ID
	s.byUsername[stored.Username] = stored.ID
	return cloneUser(stored), nil
}

func (s *UserStore) FindByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	id, ok := s.byUsername[username]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return s.FindByID(ctx, id)
}

// Update applies patch to the user. A new email or username is checked
// against every other user before both index entries are moved.
func (s *UserStore) Update(_ context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	emailMoves := patch.Email != nil && *patch.Email != u.Email
	usernameMoves := patch.Username != nil && *patch.Username != u.Username

	if emailMoves {
		if owner, taken := s.byEmail[*patch.Email]; taken && owner != id {
			return nil, domain.ErrEmailTaken
		}
	}
	if usernameMoves {
		if owner, taken := s.byUsername[*patch.Username]; taken && owner != id {
			return nil, domain.ErrUsernameTaken
		}
	}

	if patch.Empty() {
		return cloneUser(u), nil
	}

	if emailMoves {
		delete(s.byEmail, u.Email)
		s.byEmail[*patch.Email] = id
	}
	if usernameMoves {
		delete(s.byUsername, u.Username)
		s.byUsername[*patch.Username] = id
	}
	patch.Apply(u)
	u.UpdatedAt = s.now()

	return cloneUser(u), nil
}

// Delete drops the user and both index entries together.
func (s *UserStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(s.byEmail, u.Email)
	delete(s.byUsername, u.Username)
	delete(s.users, id)
	return nil
}

// List returns users in insertion (id) order.
func (s *UserStore) List(_ context.Context, skip, limit int) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	from, to := window(len(ids), skip, limit)
	out := make([]*domain.User, 0, to-from)
	for _, id := range ids[from:to] {
		out = append(out, cloneUser(s.users[id]))
	}
	return out, nil
}

func (s *UserStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}
