package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

type OptimizeHandler struct {
	Registry   ports.LocationRegistry
	Optimizer  *services.Optimizer
	Summarizer ports.Summarizer
}

// Optimize runs a full route optimization for a fresh destination set.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.OptimizeRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if msg := validateRouteInputs(r.Context(), h.Registry, req.Start, req.Destinations, req.Priorities); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	priorities := tierMap(req.Priorities)
	useSearch := req.Options != nil && req.Options.UseSearch

	result, err := h.Optimizer.Optimize(r.Context(), services.OptimizeRequest{
		Origin:       req.Start,
		Destinations: req.Destinations,
		Priorities:   priorities,
		UseSearch:    useSearch,
	})
	if err != nil {
		var unknown *domain.UnknownLocationError
		if errors.As(err, &unknown) {
			writeError(w, r, http.StatusBadRequest, unknown.Error())
			return
		}
		log.Error().Err(err).Msg("optimize failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Success:         true,
		Route:           result.Route,
		TotalDistanceKm: result.TotalDistanceKm,
		EstimatedHours:  estimatedHours(result.TotalDistanceKm),
		Summary:         h.Summarizer.Summarize(result, priorities),
		Optimization:    optimizationInfo(result),
		MapsLink:        mapsLink(result.Route),
	})
}

func optimizationInfo(result *domain.OptimizationResult) dto.OptimizationInfo {
	info := dto.OptimizationInfo{
		Algorithm:             result.Algorithm,
		CalculationTimeMs:     result.ExecutionMs,
		SavedDistanceKm:       result.DistanceSavedKm,
		ImprovementPercentage: result.ImprovementPct,
		CitiesProcessed:       result.CitiesProcessed,
		BaselineDistanceKm:    result.BaselineDistanceKm,
	}

	if result.Search != nil {
		greedy := result.Search.GreedyDistanceKm
		info.GreedyDistanceKm = &greedy
		info.SearchMetrics = &dto.SearchMetricsResponse{
			Generations:               result.Search.Generations,
			PriorityViolations:        result.Search.PriorityViolations,
			FitnessImprovementPercent: result.Search.FitnessImprovementPct,
			ConvergenceHistory:        result.Search.Convergence,
		}
	}

	return info
}
