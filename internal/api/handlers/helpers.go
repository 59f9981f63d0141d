package handlers

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"route-optimizer-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]any{
		"success":     false,
		"error":       msg,
		"status_code": status,
	})
}

// decodeStrict parses a single JSON object from the body, rejecting unknown
// fields and trailing content.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// estimatedHours assumes a 60 km/h average speed.
func estimatedHours(distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return math.Round(distanceKm/60*100) / 100
}

func mapsLink(route domain.Route) string {
	return "https://www.google.com/maps/dir/" + strings.Join(route, "/")
}

func tierMap(priorities map[string]int) map[string]domain.PriorityTier {
	if priorities == nil {
		return nil
	}
	m := make(map[string]domain.PriorityTier, len(priorities))
	for id, p := range priorities {
		m[id] = domain.PriorityTier(p)
	}
	return m
}
