package repository

import (
	"context"
	"sync"

	"docconnect/internal/models"
)

// MemoryUserRepository keeps users in insertion order, the way the demo
// backend always has. Reads and writes hand out copies.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewMemoryUserRepository(seed ...models.User) *MemoryUserRepository {
	users := make([]models.User, 0, len(seed))
	for _, u := range seed {
		users = append(users, u.Clone())
	}
	return &MemoryUserRepository{users: users}
}

func (r *MemoryUserRepository) Create(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByEmail(user.Email) >= 0 {
		return ErrEmailTaken
	}
	r.users = append(r.users, user.Clone())
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexByEmail(email)
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	return r.users[i].Clone(), nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexByID(id)
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}
	return r.users[i].Clone(), nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexByID(user.ID)
	if i < 0 {
		return ErrUserNotFound
	}
	if j := r.indexByEmail(user.Email); j >= 0 && j != i {
		return ErrEmailTaken
	}
	r.users[i] = user.Clone()
	return nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *MemoryUserRepository) indexByEmail(email string) int {
	for i := range r.users {
		if r.users[i].Email == email {
			return i
		}
	}
	return -1
}

func (r *MemoryUserRepository) indexByID(id string) int {
	for i := range r.users {
		if r.users[i].ID == id {
			return i
		}
	}
	return -1
}
