// Package apperr define la taxonomía de errores común a todos los módulos HTTP
// y la serializa como {"error": ..., "details": ...}.
package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/hlog"
)

type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindDuplicateEmail Kind = "DUPLICATE_EMAIL"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindForbidden      Kind = "FORBIDDEN"
	KindNotFound       Kind = "NOT_FOUND"
	KindInternal       Kind = "INTERNAL_ERROR"
)

// Error es un fallo clasificado. Err guarda la causa original (p.ej. error del
// driver) y solo se serializa si el request permite exponer detalles.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status traduce el Kind a código HTTP.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindDuplicateEmail:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func DuplicateEmail() *Error {
	return &Error{Kind: KindDuplicateEmail, Message: "email already registered"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

func IsKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// From clasifica err; cualquier error desconocido se trata como Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

type Response struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type ctxKey struct{}

// ExposeDetails marca en el contexto si las respuestas de error pueden incluir
// la causa original (solo fuera de producción).
func ExposeDetails(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), ctxKey{}, expose)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detailsExposed(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKey{}).(bool)
	return v
}

// Write escribe el error como JSON. Los 5xx se loguean con el logger del request.
func Write(w http.ResponseWriter, r *http.Request, err error) *Error {
	e := From(err)
	if e.Status() >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(e.Err).Str("kind", string(e.Kind)).Msg(e.Message)
	}

	resp := Response{Error: e.Message}
	if e.Err != nil && detailsExposed(r.Context()) {
		resp.Details = e.Err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status())
	_ = json.NewEncoder(w).Encode(resp)
	return e
}
