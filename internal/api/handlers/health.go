package handlers

import (
	"math"
	"net/http"
	"time"
)

// MemoStatsFunc reports the distance memo's counters for the health payload.
type MemoStatsFunc func() (hits, misses int64, size, capacity int)

type HealthHandler struct {
	MemoStats MemoStatsFunc
}

// Health provides a liveness check with distance-memo statistics.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "route-optimizer",
	}

	if h.MemoStats != nil {
		hits, misses, size, capacity := h.MemoStats()
		hitRate := 0.0
		if hits+misses > 0 {
			hitRate = math.Round(float64(hits)/float64(hits+misses)*10000) / 100
		}
		res["cache_stats"] = map[string]any{
			"hits":     hits,
			"misses":   misses,
			"size":     size,
			"max_size": capacity,
			"hit_rate": hitRate,
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
