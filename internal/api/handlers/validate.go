package handlers

import (
	"context"
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// MaxDestinations caps the destination count so optimization latency stays
// tractable (the evolutionary search budget is tuned for this scale).
const MaxDestinations = 20

// validateRouteInputs enforces the request-validator contract the core
// trusts: known cities, no duplicates, origin outside the destination set,
// bounded count, and well-formed priorities referencing destinations only.
// Returns a human-readable message on failure, "" when valid.
func validateRouteInputs(
	ctx context.Context,
	registry ports.LocationRegistry,
	start string,
	destinations []string,
	priorities map[string]int,
) string {
	if strings.TrimSpace(start) == "" {
		return "start city is required"
	}
	if len(destinations) < 1 {
		return "must have at least 1 destination city"
	}
	if len(destinations) > MaxDestinations {
		return fmt.Sprintf("maximum %d destinations allowed for performance, got %d", MaxDestinations, len(destinations))
	}

	if _, err := registry.Lookup(ctx, start); err != nil {
		return fmt.Sprintf("invalid start city: %s", start)
	}

	var invalid []string
	seen := make(map[string]bool, len(destinations))
	for _, d := range destinations {
		if seen[d] {
			return "duplicate cities found in destinations"
		}
		seen[d] = true

		if d == start {
			return fmt.Sprintf("start city %q cannot be in destinations list", start)
		}
		if _, err := registry.Lookup(ctx, d); err != nil {
			invalid = append(invalid, d)
		}
	}
	if len(invalid) > 0 {
		return fmt.Sprintf("invalid destination cities: %s", strings.Join(invalid, ", "))
	}

	for city, p := range priorities {
		if !seen[city] {
			return fmt.Sprintf("priority specified for city %q which is not in destinations", city)
		}
		if !domain.PriorityTier(p).Valid() {
			return fmt.Sprintf("invalid priority %d for city %q, must be 1 (urgent), 2 (medium), or 3 (low)", p, city)
		}
	}

	return ""
}
