// Package jwt implementa auth.AuthVerifier y auth.TokenIssuer con tokens
// HS256 firmados con un secreto compartido.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-lost-found/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	gojwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *Tokens) Issue(_ context.Context, c auth.Claims) (string, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("jwt: user id required")
	}

	now := t.now()
	claims := tokenClaims{
		ID:    c.UserID,
		Email: c.Email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   c.UserID,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

func (t *Tokens) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrTokenEmpty
	}

	var claims tokenClaims
	parsed, err := gojwt.ParseWithClaims(token, &claims, func(tk *gojwt.Token) (any, error) {
		if _, ok := tk.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tk.Header["alg"])
		}
		return t.secret, nil
	}, gojwt.WithTimeFunc(t.now), gojwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrTokenInvalid, err)
	}

	id := strings.TrimSpace(claims.ID)
	if id == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing id claim", auth.ErrTokenInvalid)
	}

	return auth.Claims{UserID: id, Email: claims.Email}, nil
}
