package announcements

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound también cubre "existe pero no es del caller" en UpdateStatus.
var ErrNotFound = errors.New("announcement not found")

type Repository interface {
	Create(ctx context.Context, a Announcement) error
	GetByID(ctx context.Context, id string) (Announcement, error)

	// Orden created_at DESC, con Owner cargado.
	ListByStatus(ctx context.Context, status Status) ([]Announcement, error)
	// status nil = todos.
	ListByOwner(ctx context.Context, ownerUserID string, status *Status) ([]Announcement, error)

	// UpdateStatus es un único UPDATE condicional (id + dueño). found_date se
	// setea solo cuando status == found.
	UpdateStatus(ctx context.Context, id, ownerUserID string, status Status, at time.Time) (Announcement, error)
}

// ListCache es opcional; las implementaciones deben ser fail-safe.
type ListCache interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}
