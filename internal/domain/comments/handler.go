package comments

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-lost-found/internal/middleware"
	"pet-lost-found/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AuthorLookup resuelve la proyección del autor para la respuesta de create.
type AuthorLookup func(r *http.Request, userID string) (*Author, error)

func RegisterRoutes(r chi.Router, svc *Service, requireUser func(http.Handler) http.Handler, author AuthorLookup) {
	r.Get("/announcements/{announcementID}/comments", listCommentsHandler(svc))
	r.With(requireUser).Post("/announcements/{announcementID}/comments", createCommentHandler(svc, author))
}

type createCommentRequest struct {
	Content string `json:"content"`
}

type authorResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type commentResponse struct {
	ID             string          `json:"id"`
	AnnouncementID string          `json:"announcement_id"`
	UserID         string          `json:"user_id"`
	Content        string          `json:"content"`
	CreatedAt      time.Time       `json:"created_at"`
	User           *authorResponse `json:"user"`
}

type commentEnvelope struct {
	Comment commentResponse `json:"comment"`
}

// @Summary Listar comentarios
// @Description Comentarios de un anuncio, más viejos primero.
// @Tags comments
// @Produce json
// @Param announcementID path string true "ID del anuncio"
// @Success 200 {array} commentResponse
// @Failure 400 {object} apperr.Response "id inválido"
// @Router /announcements/{announcementID}/comments [get]
func listCommentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := announcementID(w, r)
		if !ok {
			return
		}

		items, err := svc.ListByAnnouncement(r.Context(), id)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		out := make([]commentResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCommentResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// @Summary Comentar anuncio
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcementID path string true "ID del anuncio"
// @Param payload body createCommentRequest true "Contenido"
// @Success 201 {object} commentEnvelope
// @Failure 400 {object} apperr.Response "contenido vacío o id inválido"
// @Failure 404 {object} apperr.Response "anuncio inexistente"
// @Router /announcements/{announcementID}/comments [post]
func createCommentHandler(svc *Service, author AuthorLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		id, ok := announcementID(w, r)
		if !ok {
			return
		}

		var req createCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.Write(w, r, apperr.Validation("invalid json"))
			return
		}

		c, err := svc.Create(r.Context(), id, claims.UserID, req.Content)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		if author != nil {
			// el comentario ya está guardado: sin autor se responde igual
			if a, err := author(r, claims.UserID); err == nil {
				c.Author = a
			}
		}

		writeJSON(w, http.StatusCreated, commentEnvelope{Comment: toCommentResponse(c)})
	}
}

func announcementID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "announcementID")
	if _, err := uuid.Parse(id); err != nil {
		apperr.Write(w, r, apperr.Validation("invalid announcement id"))
		return "", false
	}
	return id, true
}

func toCommentResponse(c Comment) commentResponse {
	out := commentResponse{
		ID:             c.ID,
		AnnouncementID: c.AnnouncementID,
		UserID:         c.AuthorUserID,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt,
	}
	if c.Author != nil {
		out.User = &authorResponse{Name: c.Author.Name, Email: c.Author.Email}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
