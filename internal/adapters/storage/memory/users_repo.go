package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-lost-found/internal/domain/users"
)

type UserRepo struct {
	mu   sync.RWMutex
	byID map[string]users.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID: make(map[string]users.User),
	}
}

func (r *UserRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	if r.emailTakenLocked(u.Email, u.ID) {
		return users.ErrEmailTaken
	}
	r.byID[u.ID] = u
	return nil
}

func (r *UserRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[u.ID]; !exists {
		return users.ErrNotFound
	}
	if r.emailTakenLocked(u.Email, u.ID) {
		return users.ErrEmailTaken
	}
	r.byID[u.ID] = u
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// email case-sensitive, igual que la constraint unique de postgres
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *UserRepo) emailTakenLocked(email, exceptID string) bool {
	for id, u := range r.byID {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepo) lookup(id string) (users.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	return u, ok
}
