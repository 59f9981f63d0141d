package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	registry ports.LocationRegistry,
	optimizer *services.Optimizer,
	updater *services.Updater,
	summarizer ports.Summarizer,
	memoStats handlers.MemoStatsFunc,
) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{MemoStats: memoStats}
	citiesHandler := &handlers.CitiesHandler{Registry: registry}
	optimizeHandler := &handlers.OptimizeHandler{
		Registry:   registry,
		Optimizer:  optimizer,
		Summarizer: summarizer,
	}
	recalcHandler := &handlers.RecalcHandler{
		Registry: registry,
		Updater:  updater,
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/cities", citiesHandler.List)
	mux.HandleFunc("/api/optimize", optimizeHandler.Optimize)
	mux.HandleFunc("/api/recalculate", recalcHandler.Recalculate)
	mux.HandleFunc("/api/add-cities", recalcHandler.AddCities)
	mux.HandleFunc("/api/remove-cities", recalcHandler.RemoveCities)
	mux.HandleFunc("/api/update-priorities", recalcHandler.UpdatePriorities)
	mux.HandleFunc("/api/bulk-update", recalcHandler.BulkUpdate)

	return requestIDMiddleware(loggingMiddleware(mux))
}
