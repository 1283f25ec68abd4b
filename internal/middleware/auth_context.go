package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-lost-found/internal/platform/apperr"
	"pet-lost-found/internal/ports/auth"

	"github.com/rs/zerolog/hlog"
)

type ctxKey string

const (
	claimsKey    ctxKey = "claims"
	authErrorKey ctxKey = "auth_error"
)

// UserResolver confirma que la identidad del token sigue existiendo.
type UserResolver interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

// AuthContext:
// - Sin Bearer token => el request sigue sin claims.
// - Con token válido => setea claims.
// - Con token inválido/expirado => guarda el error; RequireUser responde 403.
// No corta nunca: las rutas públicas ignoran el header.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				ctx := context.WithValue(r.Context(), authErrorKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser exige identidad: 401 sin token, 403 con token inválido o si el
// usuario ya no existe en el store.
func RequireUser(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err, ok := r.Context().Value(authErrorKey).(error); ok {
				hlog.FromRequest(r).Debug().Err(err).Msg("rejected bearer token")
				apperr.Write(w, r, apperr.Forbidden("invalid or expired token"))
				return
			}

			claims, ok := GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.UserID) == "" {
				apperr.Write(w, r, apperr.Unauthorized("access token required"))
				return
			}

			exists, err := users.Exists(r.Context(), claims.UserID)
			if err != nil {
				apperr.Write(w, r, apperr.Internal(err))
				return
			}
			if !exists {
				apperr.Write(w, r, apperr.Forbidden("user no longer exists"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
