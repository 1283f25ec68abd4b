package announcements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"pet-lost-found/internal/domain/geo"
	"pet-lost-found/internal/platform/apperr"

	"github.com/google/uuid"
)

const listCachePrefix = "announcements:status:"

type Service struct {
	repo Repository
	geo  *geo.Table
	now  func() time.Time

	maxImageBytes int

	cache    ListCache
	cacheTTL time.Duration
	// se incrementa en cada invalidación; ListAll lo compara antes y después
	// de poblar el cache
	listVersion atomic.Uint64
}

type Option func(*Service)

// WithListCache activa el read-through de ListAll.
func WithListCache(c ListCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

func WithMaxImageBytes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxImageBytes = n
		}
	}
}

func NewService(repo Repository, table *geo.Table, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		geo:           table,
		now:           time.Now,
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	PetName      string
	Description  string
	Type         string
	Neighborhood string
	Latitude     *float64
	Longitude    *float64
	Image        ImagePayload
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Announcement, error) {
	petName := strings.TrimSpace(in.PetName)
	description := strings.TrimSpace(in.Description)
	neighborhood := strings.TrimSpace(in.Neighborhood)
	if petName == "" || description == "" || strings.TrimSpace(in.Type) == "" || neighborhood == "" {
		return Announcement{}, apperr.Validation("pet_name, description, type and neighborhood are required")
	}

	typ, err := ParseType(in.Type)
	if err != nil {
		return Announcement{}, err
	}

	img, err := normalizeImage(in.Image, s.maxImageBytes)
	if err != nil {
		return Announcement{}, err
	}

	lat, lng := s.geo.Resolve(neighborhood, in.Latitude, in.Longitude)

	now := s.now().UTC()
	a := Announcement{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		PetName:      petName,
		Description:  description,
		Type:         typ,
		Image:        img,
		Neighborhood: neighborhood,
		Latitude:     lat,
		Longitude:    lng,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Announcement{}, apperr.Internal(fmt.Errorf("create announcement: %w", err))
	}
	s.invalidate(ctx, StatusActive)

	// releer para devolver la proyección del dueño
	stored, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return a, nil
	}
	return stored, nil
}

// ListAll filtra por status exacto; "" = active.
func (s *Service) ListAll(ctx context.Context, status string) ([]Announcement, error) {
	st := StatusActive
	if strings.TrimSpace(status) != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}

	key := listCachePrefix + string(st)
	if s.cache != nil {
		if b := s.cache.Get(ctx, key); b != nil {
			var cached []Announcement
			if err := json.Unmarshal(b, &cached); err == nil {
				return cached, nil
			}
		}
	}

	version := s.listVersion.Load()
	items, err := s.repo.ListByStatus(ctx, st)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list announcements: %w", err))
	}

	if s.cache != nil {
		if b, err := json.Marshal(items); err == nil {
			s.cache.Set(ctx, key, b, s.cacheTTL)
			// hubo una escritura mientras se leía el store: la lista puede
			// estar vieja
			if s.listVersion.Load() != version {
				s.cache.Delete(ctx, key)
			}
		}
	}
	return items, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, status *Status) ([]Announcement, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID, status)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list owner announcements: %w", err))
	}
	return items, nil
}

// UpdateStatus: inexistente y ajeno responden igual (NotFound) para no filtrar
// existencia. Repetir el mismo status es válido.
func (s *Service) UpdateStatus(ctx context.Context, id, newStatus, callerUserID string) (Announcement, error) {
	st, err := ParseStatus(newStatus)
	if err != nil {
		return Announcement{}, err
	}

	a, err := s.repo.UpdateStatus(ctx, id, callerUserID, st, s.now().UTC())
	if errors.Is(err, ErrNotFound) {
		return Announcement{}, apperr.NotFound("announcement not found")
	}
	if err != nil {
		return Announcement{}, apperr.Internal(fmt.Errorf("update status: %w", err))
	}

	// el status previo no se conoce: se invalidan todas las listas
	s.InvalidateListings(ctx)
	return a, nil
}

// InvalidateListings descarta las listas cacheadas de todos los status. Las
// listas llevan la proyección del dueño, así que también corre cuando cambia
// un perfil.
func (s *Service) InvalidateListings(ctx context.Context) {
	s.invalidate(ctx, StatusActive, StatusFound, StatusInactive)
}

// Exists lo usa comments para validar el anuncio padre.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) invalidate(ctx context.Context, statuses ...Status) {
	s.listVersion.Add(1)
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(statuses))
	for _, st := range statuses {
		keys = append(keys, listCachePrefix+string(st))
	}
	s.cache.Delete(ctx, keys...)
}
