package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-lost-found/internal/domain/comments"
)

type CommentRepo struct {
	mu            sync.RWMutex
	byID          map[string]comments.Comment
	users         *UserRepo
	announcements *AnnouncementRepo
}

// NewCommentRepo: announcements hace de FK, users da la proyección del autor.
func NewCommentRepo(users *UserRepo, announcements *AnnouncementRepo) *CommentRepo {
	return &CommentRepo{
		byID:          make(map[string]comments.Comment),
		users:         users,
		announcements: announcements,
	}
}

func (r *CommentRepo) Create(ctx context.Context, c comments.Comment) error {
	if r.announcements != nil && !r.announcements.exists(c.AnnouncementID) {
		return comments.ErrAnnouncementNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("comment id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("comment already exists")
	}
	c.Author = nil
	r.byID[c.ID] = c
	return nil
}

func (r *CommentRepo) ListByAnnouncement(ctx context.Context, announcementID string) ([]comments.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]comments.Comment, 0)
	for _, c := range r.byID {
		if c.AnnouncementID != announcementID {
			continue
		}
		if r.users != nil {
			if u, ok := r.users.lookup(c.AuthorUserID); ok {
				c.Author = &comments.Author{Name: u.Name, Email: u.Email}
			}
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
