package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-lost-found/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(_ context.Context, _ string) (auth.Claims, error) {
	return s.claims, s.err
}

type stubResolver struct {
	exists bool
	err    error
}

func (s stubResolver) Exists(_ context.Context, _ string) (bool, error) {
	return s.exists, s.err
}

func serve(v auth.AuthVerifier, res UserResolver, header string) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := AuthContext(v)(RequireUser(res)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		c, _ := GetClaims(r.Context())
		_, _ = w.Write([]byte(c.UserID))
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, reached
}

func TestRequireUser(t *testing.T) {
	ok := stubVerifier{claims: auth.Claims{UserID: "u-1"}}
	bad := stubVerifier{err: auth.ErrTokenInvalid}

	tests := []struct {
		name     string
		verifier auth.AuthVerifier
		resolver UserResolver
		header   string
		want     int
	}{
		{"no header", ok, stubResolver{exists: true}, "", http.StatusUnauthorized},
		{"wrong scheme", ok, stubResolver{exists: true}, "Basic abc", http.StatusUnauthorized},
		{"empty bearer", ok, stubResolver{exists: true}, "Bearer ", http.StatusUnauthorized},
		{"invalid token", bad, stubResolver{exists: true}, "Bearer abc", http.StatusForbidden},
		{"deleted user", ok, stubResolver{exists: false}, "Bearer abc", http.StatusForbidden},
		{"lookup failure", ok, stubResolver{err: errors.New("db down")}, "Bearer abc", http.StatusInternalServerError},
		{"valid", ok, stubResolver{exists: true}, "Bearer abc", http.StatusOK},
		{"scheme case insensitive", ok, stubResolver{exists: true}, "bearer abc", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached := serve(tt.verifier, tt.resolver, tt.header)
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want == http.StatusOK, reached)
			if reached {
				assert.Equal(t, "u-1", rec.Body.String())
			}
		})
	}
}

func TestAuthContext_PublicRoutesIgnoreBadToken(t *testing.T) {
	h := AuthContext(stubVerifier{err: auth.ErrTokenInvalid})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetClaims(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
