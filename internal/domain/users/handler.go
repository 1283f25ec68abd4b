package users

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-lost-found/internal/middleware"
	"pet-lost-found/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth/*. requireUser es el gate de bearer token.
func RegisterRoutes(r chi.Router, svc *Service, requireUser func(http.Handler) http.Handler) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc))
		ar.Post("/login", loginHandler(svc))

		ar.Group(func(pr chi.Router) {
			pr.Use(requireUser)
			pr.Get("/me", meHandler(svc))
			pr.Put("/profile", updateProfileHandler(svc))
			pr.Patch("/profile", updateProfileHandler(svc))
		})
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type profileResponse struct {
	User userResponse `json:"user"`
}

// @Summary Registrar usuario
// @Description Crea una cuenta y devuelve un token firmado. El teléfono es opcional.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de la cuenta"
// @Success 201 {object} authResponse
// @Failure 400 {object} apperr.Response "campo faltante o email duplicado"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.Write(w, r, apperr.Validation("invalid json"))
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		})
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		token, err := svc.IssueToken(r.Context(), u)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserResponse(u)})
	}
}

// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} authResponse
// @Failure 400 {object} apperr.Response "campo faltante"
// @Failure 401 {object} apperr.Response "credenciales inválidas"
// @Router /auth/login [post]
func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.Write(w, r, apperr.Validation("invalid json"))
			return
		}

		u, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserResponse(u)})
	}
}

// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} apperr.Response "sin token"
// @Failure 403 {object} apperr.Response "token inválido o usuario inexistente"
// @Router /auth/me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.FindByID(r.Context(), claims.UserID)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// @Summary Actualizar perfil
// @Description Actualización parcial: los campos omitidos no se tocan. Acepta PUT y PATCH.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body updateProfileRequest true "Campos a modificar"
// @Success 200 {object} profileResponse
// @Failure 400 {object} apperr.Response "email duplicado o campo vacío"
// @Router /auth/profile [patch]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.Write(w, r, apperr.Validation("invalid json"))
			return
		}

		u, err := svc.UpdateProfile(r.Context(), claims.UserID, UpdateProfileInput{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Password: req.Password,
		})
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, profileResponse{User: toUserResponse(u)})
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
