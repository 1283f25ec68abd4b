package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/platform/apperr"
	"pet-lost-found/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "invalid email or password"

type Service struct {
	repo     Repository
	tokens   auth.TokenIssuer
	now      func() time.Time
	hashCost int

	onProfileUpdated []func(ctx context.Context, userID string)
}

type Option func(*Service)

// WithProfileListener registra un callback que corre después de cada
// UpdateProfile exitoso. Lo usan las proyecciones que copian datos del dueño.
func WithProfileListener(fn func(ctx context.Context, userID string)) Option {
	return func(s *Service) {
		if fn != nil {
			s.onProfileUpdated = append(s.onProfileUpdated, fn)
		}
	}
}

func NewService(repo Repository, tokens auth.TokenIssuer, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		tokens:   tokens,
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return User{}, apperr.Validation("name, email and password are required")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, apperr.DuplicateEmail()
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, apperr.Internal(fmt.Errorf("lookup email: %w", err))
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return User{}, err
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// carrera entre el chequeo y el insert: la constraint unique decide
		if errors.Is(err, ErrEmailTaken) {
			return User{}, apperr.DuplicateEmail()
		}
		return User{}, apperr.Internal(fmt.Errorf("create user: %w", err))
	}
	return u.withoutHash(), nil
}

func (s *Service) FindByID(ctx context.Context, id string) (User, error) {
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	return u.withoutHash(), lookupErr(err)
}

func (s *Service) FindByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	return u.withoutHash(), lookupErr(err)
}

// Exists se usa desde el middleware para re-validar la identidad del token.
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

func (s *Service) VerifyPassword(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

// Login devuelve el mismo error para email desconocido y password incorrecta.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, "", apperr.Validation("email and password are required")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, "", apperr.Unauthorized(invalidCredentials)
	}
	if err != nil {
		return User{}, "", apperr.Internal(fmt.Errorf("lookup email: %w", err))
	}

	if !s.VerifyPassword(password, u.PasswordHash) {
		return User{}, "", apperr.Unauthorized(invalidCredentials)
	}

	token, err := s.IssueToken(ctx, u)
	if err != nil {
		return User{}, "", err
	}
	return u.withoutHash(), token, nil
}

func (s *Service) IssueToken(ctx context.Context, u User) (string, error) {
	token, err := s.tokens.Issue(ctx, auth.Claims{UserID: u.ID, Email: u.Email})
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("issue token: %w", err))
	}
	return token, nil
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (User, error) {
	// lookup interno: Update necesita el hash vigente
	u, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err := lookupErr(err); err != nil {
		return User{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return User{}, apperr.Validation("name cannot be empty")
		}
		u.Name = name
	}

	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return User{}, apperr.Validation("email cannot be empty")
		}
		if email != u.Email {
			other, err := s.repo.GetByEmail(ctx, email)
			switch {
			case err == nil && other.ID != u.ID:
				return User{}, apperr.DuplicateEmail()
			case err != nil && !errors.Is(err, ErrNotFound):
				return User{}, apperr.Internal(fmt.Errorf("lookup email: %w", err))
			}
			u.Email = email
		}
	}

	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}

	if in.Password != nil {
		if *in.Password == "" {
			return User{}, apperr.Validation("password cannot be empty")
		}
		hash, err := s.hash(*in.Password)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			return User{}, apperr.DuplicateEmail()
		case errors.Is(err, ErrNotFound):
			return User{}, apperr.NotFound("user not found")
		default:
			return User{}, apperr.Internal(fmt.Errorf("update user: %w", err))
		}
	}

	for _, fn := range s.onProfileUpdated {
		fn(ctx, u.ID)
	}
	return u.withoutHash(), nil
}

func (s *Service) hash(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), s.hashCost)
	if err != nil {
		// bcrypt rechaza passwords de más de 72 bytes
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("password is too long")
		}
		return "", apperr.Internal(fmt.Errorf("hash password: %w", err))
	}
	return string(b), nil
}

func lookupErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("user not found")
	default:
		return apperr.Internal(fmt.Errorf("lookup user: %w", err))
	}
}
