package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// Updater applies live changes to an in-progress route by recomputing only
// the unvisited suffix. The visited prefix is never reordered or dropped.
type Updater struct {
	Optimizer *Optimizer
	Registry  ports.LocationRegistry
}

func NewUpdater(optimizer *Optimizer, registry ports.LocationRegistry) *Updater {
	return &Updater{Optimizer: optimizer, Registry: registry}
}

// RecalcMeta describes a recalculation run.
type RecalcMeta struct {
	CurrentPosition string
	RemainingCities int
	ElapsedMs       float64
}

// PriorityChange records one destination's tier transition. Old is nil when
// the destination had no explicit tier before.
type PriorityChange struct {
	City string
	Old  *domain.PriorityTier
	New  *domain.PriorityTier
}

// ChangeMeta describes the route change an update operation applied.
type ChangeMeta struct {
	Operation            string
	CitiesAdded          []string
	CitiesRemoved        []string
	PriorityChanges      []PriorityChange
	PrioritiesUpdated    bool
	RecalculationSkipped bool
	SkipReason           string
	ElapsedMs            float64
}

// UpdateResult is the outcome of one update operation. Optimization is nil
// when recalculation was skipped; Route is always populated.
type UpdateResult struct {
	Route        domain.Route
	Optimization *domain.OptimizationResult
	Recalc       *RecalcMeta
	Change       ChangeMeta
}

// Recalculate re-optimizes from the current position over the remaining
// destinations, delegating to the optimizer.
func (u *Updater) Recalculate(
	ctx context.Context,
	position string,
	remaining []string,
	priorities map[string]domain.PriorityTier,
	useSearch bool,
) (*UpdateResult, error) {
	start := time.Now()

	result, err := u.Optimizer.Optimize(ctx, OptimizeRequest{
		Origin:       position,
		Destinations: remaining,
		Priorities:   priorities,
		UseSearch:    useSearch,
	})
	if err != nil {
		return nil, fmt.Errorf("recalculate route: %w", err)
	}

	return &UpdateResult{
		Route:        result.Route,
		Optimization: result,
		Recalc: &RecalcMeta{
			CurrentPosition: position,
			RemainingCities: len(remaining),
			ElapsedMs:       elapsedMs(start),
		},
	}, nil
}

// AddCities appends new stops to the unvisited suffix and re-optimizes it.
// Every new identifier is validated against the registry first; one unknown
// identifier fails the whole operation with no partial add.
func (u *Updater) AddCities(
	ctx context.Context,
	position string,
	existing domain.Route,
	newCities []string,
	priorities map[string]domain.PriorityTier,
	useSearch bool,
) (*UpdateResult, error) {
	start := time.Now()

	for _, id := range newCities {
		if _, err := u.Registry.Lookup(ctx, id); err != nil {
			return nil, fmt.Errorf("add cities: %w", err)
		}
	}

	remaining := unvisitedSuffix(existing, position)
	remaining = append(remaining, newCities...)

	result, err := u.Recalculate(ctx, position, remaining, priorities, useSearch)
	if err != nil {
		return nil, fmt.Errorf("add cities: %w", err)
	}

	result.Change = ChangeMeta{
		Operation:   "add_cities",
		CitiesAdded: newCities,
		ElapsedMs:   elapsedMs(start),
	}
	return result, nil
}

// RemoveCities drops stops from the unvisited suffix and re-optimizes it.
// When every removal target lies in the visited prefix the recalculation is
// skipped entirely and the input route comes back unchanged.
func (u *Updater) RemoveCities(
	ctx context.Context,
	position string,
	existing domain.Route,
	citiesToRemove []string,
	priorities map[string]domain.PriorityTier,
	useSearch bool,
) (*UpdateResult, error) {
	start := time.Now()

	remaining := unvisitedSuffix(existing, position)

	drop := make(map[string]bool, len(citiesToRemove))
	for _, id := range citiesToRemove {
		drop[id] = true
	}
	kept := remaining[:0:0]
	for _, id := range remaining {
		if !drop[id] {
			kept = append(kept, id)
		}
	}

	if len(kept) == len(remaining) {
		return &UpdateResult{
			Route: existing.Clone(),
			Change: ChangeMeta{
				Operation:            "remove_cities",
				CitiesRemoved:        citiesToRemove,
				RecalculationSkipped: true,
				SkipReason:           "all removed cities already visited",
				ElapsedMs:            elapsedMs(start),
			},
		}, nil
	}

	result, err := u.Recalculate(ctx, position, kept, priorities, useSearch)
	if err != nil {
		return nil, fmt.Errorf("remove cities: %w", err)
	}

	result.Change = ChangeMeta{
		Operation:     "remove_cities",
		CitiesRemoved: citiesToRemove,
		ElapsedMs:     elapsedMs(start),
	}
	return result, nil
}

// UpdatePriorities re-optimizes the unchanged suffix under a new priority
// mapping and reports which destinations' tiers changed.
func (u *Updater) UpdatePriorities(
	ctx context.Context,
	position string,
	remaining []string,
	oldPriorities, newPriorities map[string]domain.PriorityTier,
	useSearch bool,
) (*UpdateResult, error) {
	start := time.Now()

	changes := diffPriorities(remaining, oldPriorities, newPriorities)

	result, err := u.Recalculate(ctx, position, remaining, newPriorities, useSearch)
	if err != nil {
		return nil, fmt.Errorf("update priorities: %w", err)
	}

	result.Change = ChangeMeta{
		Operation:         "update_priorities",
		PriorityChanges:   changes,
		PrioritiesUpdated: true,
		ElapsedMs:         elapsedMs(start),
	}
	return result, nil
}

// BulkUpdate composes removals, additions, and a priority update into
// exactly one recalculation: one distance-table build, one optimization run.
func (u *Updater) BulkUpdate(
	ctx context.Context,
	position string,
	existing domain.Route,
	citiesToAdd, citiesToRemove []string,
	priorities map[string]domain.PriorityTier,
	useSearch bool,
) (*UpdateResult, error) {
	start := time.Now()

	for _, id := range citiesToAdd {
		if _, err := u.Registry.Lookup(ctx, id); err != nil {
			return nil, fmt.Errorf("bulk update: %w", err)
		}
	}

	remaining := unvisitedSuffix(existing, position)

	if len(citiesToRemove) > 0 {
		drop := make(map[string]bool, len(citiesToRemove))
		for _, id := range citiesToRemove {
			drop[id] = true
		}
		kept := remaining[:0:0]
		for _, id := range remaining {
			if !drop[id] {
				kept = append(kept, id)
			}
		}
		remaining = kept
	}

	remaining = append(remaining, citiesToAdd...)

	result, err := u.Recalculate(ctx, position, remaining, priorities, useSearch)
	if err != nil {
		return nil, fmt.Errorf("bulk update: %w", err)
	}

	result.Change = ChangeMeta{
		Operation:         "bulk_update",
		CitiesAdded:       citiesToAdd,
		CitiesRemoved:     citiesToRemove,
		PrioritiesUpdated: priorities != nil,
		ElapsedMs:         elapsedMs(start),
	}
	return result, nil
}

// unvisitedSuffix returns the stops after the current position. When the
// position is not on the route (the driver already deviated), the whole
// route is treated as unvisited rather than failing.
func unvisitedSuffix(existing domain.Route, position string) []string {
	for i, id := range existing {
		if id == position {
			out := make([]string, len(existing)-i-1)
			copy(out, existing[i+1:])
			return out
		}
	}
	out := make([]string, len(existing))
	copy(out, existing)
	return out
}

func diffPriorities(remaining []string, old, updated map[string]domain.PriorityTier) []PriorityChange {
	var changes []PriorityChange
	for _, id := range remaining {
		var oldTier, newTier *domain.PriorityTier
		if t, ok := old[id]; ok {
			tier := t
			oldTier = &tier
		}
		if t, ok := updated[id]; ok {
			tier := t
			newTier = &tier
		}
		if (oldTier == nil) != (newTier == nil) || (oldTier != nil && *oldTier != *newTier) {
			changes = append(changes, PriorityChange{City: id, Old: oldTier, New: newTier})
		}
	}
	return changes
}

func elapsedMs(start time.Time) float64 {
	return math.Round(float64(time.Since(start).Microseconds())/10) / 100
}
