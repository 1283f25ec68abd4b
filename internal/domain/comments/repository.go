package comments

import (
	"context"
	"errors"
)

// ErrAnnouncementNotFound: el anuncio padre no existe (FK violada en postgres).
var ErrAnnouncementNotFound = errors.New("announcement not found")

type Repository interface {
	Create(ctx context.Context, c Comment) error
	// Orden created_at ASC, con Author cargado.
	ListByAnnouncement(ctx context.Context, announcementID string) ([]Comment, error)
}

// AnnouncementChecker valida el padre antes de insertar.
type AnnouncementChecker interface {
	Exists(ctx context.Context, announcementID string) (bool, error)
}
