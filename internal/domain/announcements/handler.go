package announcements

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-lost-found/internal/middleware"
	"pet-lost-found/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RegisterRoutes monta /announcements y /my-announcements. Las rutas de
// comentarios (/announcements/{id}/comments) las monta el módulo comments.
func RegisterRoutes(r chi.Router, svc *Service, requireUser func(http.Handler) http.Handler) {
	r.Get("/announcements", listAnnouncementsHandler(svc))

	r.Group(func(pr chi.Router) {
		pr.Use(requireUser)
		pr.Post("/announcements", createAnnouncementHandler(svc))
		pr.Get("/my-announcements", listMyAnnouncementsHandler(svc))
		pr.Patch("/announcements/{announcementID}/status", updateStatusHandler(svc))
	})
}

type createAnnouncementRequest struct {
	PetName       string   `json:"pet_name"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	Neighborhood  string   `json:"neighborhood"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	ImageData     string   `json:"image_data"`      // base64, admite prefijo data:
	ImageMimeType string   `json:"image_mime_type"` // ej: image/jpeg
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type ownerResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type announcementResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	PetName      string         `json:"pet_name"`
	Description  string         `json:"description"`
	Type         Type           `json:"type"`
	Image        *string        `json:"image"` // data:<mime>;base64,... o null
	Neighborhood string         `json:"neighborhood"`
	Latitude     *float64       `json:"latitude"`
	Longitude    *float64       `json:"longitude"`
	Status       Status         `json:"status"`
	FoundDate    *time.Time     `json:"found_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	User         *ownerResponse `json:"user"`
}

type announcementEnvelope struct {
	Announcement announcementResponse `json:"announcement"`
}

// @Summary Crear anuncio
// @Description Acepta multipart/form-data (campo de archivo `image`) o JSON con `image_data` en base64 + `image_mime_type`. Si no vienen latitude/longitude se resuelven por bairro.
// @Tags announcements
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param payload body createAnnouncementRequest true "Datos del anuncio"
// @Success 201 {object} announcementEnvelope
// @Failure 400 {object} apperr.Response "campo faltante o imagen inválida"
// @Failure 401 {object} apperr.Response "sin token"
// @Failure 403 {object} apperr.Response "token inválido"
// @Router /announcements [post]
func createAnnouncementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var (
			in  CreateInput
			err error
		)
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "multipart/form-data" {
			in, err = decodeMultipart(w, r, svc.maxImageBytes)
		} else {
			in, err = decodeJSON(w, r, svc.maxImageBytes)
		}
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, announcementEnvelope{Announcement: toAnnouncementResponse(a)})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxImageBytes int) (CreateInput, error) {
	// base64 ocupa 4/3 del binario, más 1 MiB para el resto de los campos
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxImageBytes)*4/3+1<<20)

	var req createAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return CreateInput{}, tooLarge(maxImageBytes)
		}
		return CreateInput{}, apperr.Validation("invalid json")
	}

	in := CreateInput{
		PetName:      req.PetName,
		Description:  req.Description,
		Type:         req.Type,
		Neighborhood: req.Neighborhood,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	if strings.TrimSpace(req.ImageData) != "" {
		in.Image = Base64Payload{Data: req.ImageData, MimeType: req.ImageMimeType}
	}
	return in, nil
}

func decodeMultipart(w http.ResponseWriter, r *http.Request, maxImageBytes int) (CreateInput, error) {
	// margen de 1 MiB para los campos de texto
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxImageBytes)+1<<20)
	if err := r.ParseMultipartForm(int64(maxImageBytes)); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return CreateInput{}, tooLarge(maxImageBytes)
		}
		return CreateInput{}, apperr.Validation("invalid multipart form")
	}

	lat, err := optionalFloat(r.FormValue("latitude"), "latitude")
	if err != nil {
		return CreateInput{}, err
	}
	lng, err := optionalFloat(r.FormValue("longitude"), "longitude")
	if err != nil {
		return CreateInput{}, err
	}

	in := CreateInput{
		PetName:      r.FormValue("pet_name"),
		Description:  r.FormValue("description"),
		Type:         r.FormValue("type"),
		Neighborhood: r.FormValue("neighborhood"),
		Latitude:     lat,
		Longitude:    lng,
	}

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return in, nil
	case err != nil:
		return CreateInput{}, apperr.Validation("invalid image")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, int64(maxImageBytes)+1))
	if err != nil {
		return CreateInput{}, apperr.Validation("invalid image")
	}
	in.Image = FileUpload{Data: data, ContentType: header.Header.Get("Content-Type")}
	return in, nil
}

func optionalFloat(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Validation(field + " must be a number")
	}
	return &v, nil
}

// @Summary Listar anuncios
// @Description Lista pública filtrada por status (por defecto active), más nuevos primero.
// @Tags announcements
// @Produce json
// @Param status query string false "active | found | inactive"
// @Success 200 {array} announcementResponse
// @Failure 400 {object} apperr.Response "status inválido"
// @Router /announcements [get]
func listAnnouncementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			apperr.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnnouncementResponses(items))
	}
}

// @Summary Mis anuncios
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Param status query string false "active | found | inactive (sin valor = todos)"
// @Success 200 {array} announcementResponse
// @Failure 400 {object} apperr.Response "status inválido"
// @Failure 401 {object} apperr.Response "sin token"
// @Router /my-announcements [get]
func listMyAnnouncementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var filter *Status
		if raw := r.URL.Query().Get("status"); strings.TrimSpace(raw) != "" {
			st, err := ParseStatus(raw)
			if err != nil {
				apperr.Write(w, r, err)
				return
			}
			filter = &st
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID, filter)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnnouncementResponses(items))
	}
}

// @Summary Cambiar status
// @Description Solo el dueño. Inexistente o ajeno responden 404. Pasar a found setea found_date.
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param announcementID path string true "ID del anuncio"
// @Param payload body updateStatusRequest true "Nuevo status"
// @Success 200 {object} announcementEnvelope
// @Failure 400 {object} apperr.Response "status inválido"
// @Failure 404 {object} apperr.Response "no existe o no es del caller"
// @Router /announcements/{announcementID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.Write(w, r, apperr.Validation("invalid json"))
			return
		}
		if _, err := ParseStatus(req.Status); err != nil {
			apperr.Write(w, r, err)
			return
		}

		id := chi.URLParam(r, "announcementID")
		if _, err := uuid.Parse(id); err != nil {
			apperr.Write(w, r, apperr.NotFound("announcement not found"))
			return
		}

		a, err := svc.UpdateStatus(r.Context(), id, req.Status, claims.UserID)
		if err != nil {
			apperr.Write(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, announcementEnvelope{Announcement: toAnnouncementResponse(a)})
	}
}

func toAnnouncementResponse(a Announcement) announcementResponse {
	out := announcementResponse{
		ID:           a.ID,
		UserID:       a.OwnerUserID,
		PetName:      a.PetName,
		Description:  a.Description,
		Type:         a.Type,
		Neighborhood: a.Neighborhood,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		Status:       a.Status,
		FoundDate:    a.FoundDate,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
	if a.Image != nil {
		uri := a.Image.DataURI()
		out.Image = &uri
	}
	if a.Owner != nil {
		out.User = &ownerResponse{Name: a.Owner.Name, Phone: a.Owner.Phone, Email: a.Owner.Email}
	}
	return out
}

func toAnnouncementResponses(items []Announcement) []announcementResponse {
	out := make([]announcementResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnnouncementResponse(a))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
