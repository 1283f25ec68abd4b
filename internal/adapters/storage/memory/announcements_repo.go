package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-lost-found/internal/domain/announcements"
)

type AnnouncementRepo struct {
	mu    sync.RWMutex
	byID  map[string]announcements.Announcement
	users *UserRepo
}

// NewAnnouncementRepo usa users para la proyección del dueño.
func NewAnnouncementRepo(users *UserRepo) *AnnouncementRepo {
	return &AnnouncementRepo{
		byID:  make(map[string]announcements.Announcement),
		users: users,
	}
}

func (r *AnnouncementRepo) Create(ctx context.Context, a announcements.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("announcement id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("announcement already exists")
	}
	a.Owner = nil
	r.byID[a.ID] = a
	return nil
}

func (r *AnnouncementRepo) GetByID(ctx context.Context, id string) (announcements.Announcement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return announcements.Announcement{}, announcements.ErrNotFound
	}
	return r.withOwner(a), nil
}

func (r *AnnouncementRepo) ListByStatus(ctx context.Context, status announcements.Status) ([]announcements.Announcement, error) {
	return r.list(func(a announcements.Announcement) bool {
		return a.Status == status
	}), nil
}

func (r *AnnouncementRepo) ListByOwner(ctx context.Context, ownerUserID string, status *announcements.Status) ([]announcements.Announcement, error) {
	return r.list(func(a announcements.Announcement) bool {
		if a.OwnerUserID != ownerUserID {
			return false
		}
		return status == nil || a.Status == *status
	}), nil
}

// UpdateStatus replica el UPDATE ... WHERE id AND user_id bajo un solo lock.
func (r *AnnouncementRepo) UpdateStatus(ctx context.Context, id, ownerUserID string, status announcements.Status, at time.Time) (announcements.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.OwnerUserID != ownerUserID {
		return announcements.Announcement{}, announcements.ErrNotFound
	}

	a.Status = status
	a.UpdatedAt = at
	if status == announcements.StatusFound {
		t := at
		a.FoundDate = &t
	}
	r.byID[id] = a
	return r.withOwner(a), nil
}

func (r *AnnouncementRepo) list(keep func(announcements.Announcement) bool) []announcements.Announcement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]announcements.Announcement, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, r.withOwner(a))
		}
	}

	// created_at DESC; id como desempate para orden estable
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *AnnouncementRepo) withOwner(a announcements.Announcement) announcements.Announcement {
	if r.users == nil {
		return a
	}
	if u, ok := r.users.lookup(a.OwnerUserID); ok {
		a.Owner = &announcements.Owner{Name: u.Name, Phone: u.Phone, Email: u.Email}
	}
	return a
}

func (r *AnnouncementRepo) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok
}
