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

type RecalcHandler struct {
	Registry ports.LocationRegistry
	Updater  *services.Updater
}

// Recalculate re-optimizes from the current position over the remaining
// destinations (mid-route optimization).
func (h *RecalcHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RecalculateRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if msg := validateRouteInputs(r.Context(), h.Registry, req.CurrentPosition, req.RemainingDestinations, req.Priorities); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	result, err := h.Updater.Recalculate(
		r.Context(), req.CurrentPosition, req.RemainingDestinations, tierMap(req.Priorities), req.UseSearch)
	h.respond(w, r, result, err)
}

// AddCities appends new stops to an active route's unvisited suffix.
func (h *RecalcHandler) AddCities(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.AddCitiesRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	result, err := h.Updater.AddCities(
		r.Context(), req.CurrentPosition, domain.Route(req.ExistingRoute), req.NewCities,
		tierMap(req.Priorities), req.UseSearch)
	h.respond(w, r, result, err)
}

// RemoveCities drops stops (cancellations) from an active route.
func (h *RecalcHandler) RemoveCities(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.RemoveCitiesRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	result, err := h.Updater.RemoveCities(
		r.Context(), req.CurrentPosition, domain.Route(req.ExistingRoute), req.CitiesToRemove,
		tierMap(req.Priorities), req.UseSearch)
	h.respond(w, r, result, err)
}

// UpdatePriorities re-optimizes the remaining stops under a new tier map.
func (h *RecalcHandler) UpdatePriorities(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.UpdatePrioritiesRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	if msg := validateRouteInputs(r.Context(), h.Registry, req.CurrentPosition, req.RemainingDestinations, req.NewPriorities); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	result, err := h.Updater.UpdatePriorities(
		r.Context(), req.CurrentPosition, req.RemainingDestinations,
		tierMap(req.OldPriorities), tierMap(req.NewPriorities), req.UseSearch)
	h.respond(w, r, result, err)
}

// BulkUpdate applies additions, removals, and a priority update in one
// optimization pass.
func (h *RecalcHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req dto.BulkUpdateRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	result, err := h.Updater.BulkUpdate(
		r.Context(), req.CurrentPosition, domain.Route(req.ExistingRoute),
		req.CitiesToAdd, req.CitiesToRemove, tierMap(req.UpdatedPriorities), req.UseSearch)
	h.respond(w, r, result, err)
}

func (h *RecalcHandler) respond(w http.ResponseWriter, r *http.Request, result *services.UpdateResult, err error) {
	if err != nil {
		var unknown *domain.UnknownLocationError
		if errors.As(err, &unknown) {
			writeError(w, r, http.StatusBadRequest, unknown.Error())
			return
		}
		log.Error().Err(err).Msg("route update failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.UpdateResponse{
		Success: true,
		Route:   result.Route,
		Change:  changeMetadata(result.Change),
	}
	if result.Optimization != nil {
		res.TotalDistanceKm = result.Optimization.TotalDistanceKm
		res.EstimatedHours = estimatedHours(result.Optimization.TotalDistanceKm)
		info := optimizationInfo(result.Optimization)
		res.Optimization = &info
	}
	if result.Recalc != nil {
		res.Recalculation = &dto.RecalculationMetadata{
			CurrentPosition:   result.Recalc.CurrentPosition,
			RemainingCities:   result.Recalc.RemainingCities,
			TotalRecalcTimeMs: result.Recalc.ElapsedMs,
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func changeMetadata(change services.ChangeMeta) dto.ChangeMetadata {
	meta := dto.ChangeMetadata{
		Operation:            change.Operation,
		CitiesAdded:          change.CitiesAdded,
		CitiesRemoved:        change.CitiesRemoved,
		PrioritiesUpdated:    change.PrioritiesUpdated,
		RecalculationSkipped: change.RecalculationSkipped,
		SkipReason:           change.SkipReason,
		TotalOperationTimeMs: change.ElapsedMs,
	}

	for _, c := range change.PriorityChanges {
		info := dto.PriorityChangeInfo{City: c.City}
		if c.Old != nil {
			v := int(*c.Old)
			info.OldPriority = &v
		}
		if c.New != nil {
			v := int(*c.New)
			info.NewPriority = &v
		}
		meta.PriorityChanges = append(meta.PriorityChanges, info)
	}

	return meta
}
