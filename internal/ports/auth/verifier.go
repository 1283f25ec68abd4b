package auth

import (
	"context"
	"errors"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid or expired")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token para una identidad ya autenticada.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
}
