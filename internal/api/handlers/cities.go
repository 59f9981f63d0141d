package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
)

type CitiesHandler struct {
	Registry ports.LocationRegistry
}

// List returns the cities available for route planning, with coordinates.
func (h *CitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ids, err := h.Registry.AllIDs(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list cities failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	details := make(map[string]dto.CityInfo, len(ids))
	for _, id := range ids {
		c, err := h.Registry.Lookup(r.Context(), id)
		if err != nil {
			log.Error().Err(err).Str("city", id).Msg("lookup city failed")
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		details[id] = dto.CityInfo{Lat: c.Lat, Lon: c.Lon}
	}

	writeJSON(w, r, http.StatusOK, dto.CitiesResponse{
		Success: true,
		Count:   len(ids),
		Cities:  ids,
		Details: details,
	})
}
