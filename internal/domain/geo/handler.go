package geo

import (
	"encoding/json"
	"net/http"

	"pet-lost-found/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, table *Table) {
	r.Get("/neighborhoods", listNeighborhoodsHandler(table))
	r.Post("/get-location", getLocationHandler(table))
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type locationResponse struct {
	Neighborhood string  `json:"neighborhood"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
}

// @Summary Listar bairros
// @Tags geo
// @Produce json
// @Success 200 {array} string
// @Router /neighborhoods [get]
func listNeighborhoodsHandler(table *Table) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, table.Names())
	}
}

// @Summary Bairro más cercano
// @Description Devuelve el bairro conocido más cercano a las coordenadas (GPS del cliente).
// @Tags geo
// @Accept json
// @Produce json
// @Param payload body locationRequest true "Coordenadas"
// @Success 200 {object} locationResponse
// @Failure 400 {object} apperr.Response "coordenadas faltantes"
// @Router /get-location [post]
func getLocationHandler(table *Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req locationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperr.Write(w, r, apperr.Validation("invalid json"))
			return
		}
		if req.Latitude == nil || req.Longitude == nil {
			apperr.Write(w, r, apperr.Validation("latitude and longitude are required"))
			return
		}

		n := table.Nearest(*req.Latitude, *req.Longitude)
		writeJSON(w, http.StatusOK, locationResponse{
			Neighborhood: n.Name,
			Latitude:     *req.Latitude,
			Longitude:    *req.Longitude,
			Address:      table.Address(n.Name),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
