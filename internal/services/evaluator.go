package services

import "route-optimizer-service/internal/domain"

// TotalDistance sums consecutive-pair distances over a route. O(|route|).
// Pairs missing from the table contribute zero; callers build the table over
// the same location set as the route, so a miss indicates broken input
// rather than a recoverable condition.
func TotalDistance(route domain.Route, table domain.DistanceTable) float64 {
	var total float64
	for i := 0; i < len(route)-1; i++ {
		if d, ok := table.Lookup(route[i], route[i+1]); ok {
			total += d
		}
	}
	return total
}

// PriorityViolations counts urgency-order inversions over the destination
// suffix: every ordered pair (i before j) where stop i carries a numerically
// greater (less urgent) tier than stop j. The full O(n²) pair count, not
// just adjacent pairs; the origin at index 0 is excluded. A perfectly
// tier-respecting route scores 0.
func PriorityViolations(route domain.Route, priorities map[string]domain.PriorityTier) int {
	if len(priorities) == 0 {
		return 0
	}

	violations := 0
	for i := 1; i < len(route); i++ {
		for j := i + 1; j < len(route); j++ {
			if domain.TierOf(priorities, route[i]) > domain.TierOf(priorities, route[j]) {
				violations++
			}
		}
	}
	return violations
}

// Fitness scores a candidate route; lower is better.
// Distance plus penaltyWeight per priority violation. With no priorities the
// score degenerates to plain total distance.
func Fitness(route domain.Route, table domain.DistanceTable, priorities map[string]domain.PriorityTier, penaltyWeight float64) float64 {
	score := TotalDistance(route, table)
	if len(priorities) > 0 {
		score += float64(PriorityViolations(route, priorities)) * penaltyWeight
	}
	return score
}
