package summary

import (
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
)

// TemplateSummarizer renders a deterministic, template-based explanation of
// an optimization result. It is the stand-in for an external text-generation
// service; the core never depends on one being available.
type TemplateSummarizer struct{}

func NewTemplateSummarizer() *TemplateSummarizer {
	return &TemplateSummarizer{}
}

func (s *TemplateSummarizer) Summarize(result *domain.OptimizationResult, priorities map[string]domain.PriorityTier) string {
	route := result.Route
	if len(route) == 0 {
		return "No route computed."
	}
	if len(route) == 1 {
		return fmt.Sprintf("No destinations to visit; vehicle stays at %s.", route[0])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Optimized route from %s through %d cities to %s using %s. ",
		route[0], len(route)-2, route[len(route)-1], result.Algorithm)
	fmt.Fprintf(&b, "Total distance: %.2f km. ", result.TotalDistanceKm)

	if result.DistanceSavedKm > 0 {
		fmt.Fprintf(&b, "This route saves %.2f km (%.1f%% improvement) compared to baseline routing. ",
			result.DistanceSavedKm, result.ImprovementPct)
	}

	if urgent := urgentStops(route.Destinations(), priorities); len(urgent) > 0 {
		fmt.Fprintf(&b, "Urgent deliveries scheduled first: %s.", strings.Join(urgent, ", "))
	}

	return strings.TrimSpace(b.String())
}

func urgentStops(destinations []string, priorities map[string]domain.PriorityTier) []string {
	var urgent []string
	for _, d := range destinations {
		if domain.TierOf(priorities, d) == domain.TierUrgent {
			urgent = append(urgent, d)
		}
	}
	return urgent
}
