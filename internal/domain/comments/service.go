package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/platform/apperr"

	"github.com/google/uuid"
)

type Service struct {
	repo          Repository
	announcements AnnouncementChecker
	now           func() time.Time
}

func NewService(repo Repository, announcements AnnouncementChecker) *Service {
	return &Service{
		repo:          repo,
		announcements: announcements,
		now:           time.Now,
	}
}

// Create acepta comentarios en anuncios de cualquier status.
func (s *Service) Create(ctx context.Context, announcementID, authorUserID, content string) (Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Comment{}, apperr.Validation("content is required")
	}

	ok, err := s.announcements.Exists(ctx, announcementID)
	if err != nil {
		return Comment{}, apperr.Internal(fmt.Errorf("check announcement: %w", err))
	}
	if !ok {
		return Comment{}, apperr.NotFound("announcement not found")
	}

	c := Comment{
		ID:             uuid.NewString(),
		AnnouncementID: announcementID,
		AuthorUserID:   authorUserID,
		Content:        content,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		// el anuncio puede desaparecer entre el chequeo y el insert
		if errors.Is(err, ErrAnnouncementNotFound) {
			return Comment{}, apperr.NotFound("announcement not found")
		}
		return Comment{}, apperr.Internal(fmt.Errorf("create comment: %w", err))
	}
	return c, nil
}

func (s *Service) ListByAnnouncement(ctx context.Context, announcementID string) ([]Comment, error) {
	items, err := s.repo.ListByAnnouncement(ctx, announcementID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list comments: %w", err))
	}
	return items, nil
}
