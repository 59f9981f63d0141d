package services

import (
	"math"

	"route-optimizer-service/internal/domain"
)

// Build plans a route using the greedy nearest-neighbor algorithm.
//
// At each step the closest unvisited destination to the current tail is
// appended. Ties keep the earliest destination in input order (stable min),
// which makes the construction deterministic. O(n²). The algorithm minimizes
// immediate travel distance at each step and does not attempt global
// optimality.
func Build(origin string, destinations []string, table domain.DistanceTable) domain.Route {
	route := make(domain.Route, 0, len(destinations)+1)
	route = append(route, origin)

	unvisited := make([]string, len(destinations))
	copy(unvisited, destinations)

	current := origin
	for len(unvisited) > 0 {
		bestIdx := -1
		bestDist := math.MaxFloat64
		for i, d := range unvisited {
			if dist, ok := table.Lookup(current, d); ok && dist < bestDist {
				bestDist = dist
				bestIdx = i
			}
		}
		if bestIdx == -1 {
			// Table does not cover the remaining set; keep input order so the
			// route still terminates with the right length.
			bestIdx = 0
		}

		next := unvisited[bestIdx]
		route = append(route, next)
		unvisited = append(unvisited[:bestIdx], unvisited[bestIdx+1:]...)
		current = next
	}

	return route
}

// BuildTiered plans a route with nearest-neighbor applied independently
// within each priority tier, in ascending tier order, chaining the tail of
// one tier as the start of the next.
//
// The result has zero priority violations by construction. It may be
// distance-suboptimal across tier boundaries; that trade-off is accepted.
func BuildTiered(origin string, destinations []string, priorities map[string]domain.PriorityTier, table domain.DistanceTable) domain.Route {
	if len(priorities) == 0 {
		return Build(origin, destinations, table)
	}

	groups := groupByTier(destinations, priorities)

	route := make(domain.Route, 0, len(destinations)+1)
	route = append(route, origin)

	for _, tier := range []domain.PriorityTier{domain.TierUrgent, domain.TierMedium, domain.TierLow} {
		group := groups[tier]
		if len(group) == 0 {
			continue
		}
		segment := Build(route[len(route)-1], group, table)
		route = append(route, segment.Destinations()...)
	}

	return route
}

// groupByTier partitions destinations by priority tier, preserving input
// order within each group. Unmapped destinations fall into the default tier.
func groupByTier(destinations []string, priorities map[string]domain.PriorityTier) map[domain.PriorityTier][]string {
	groups := make(map[domain.PriorityTier][]string, 3)
	for _, d := range destinations {
		tier := domain.TierOf(priorities, d)
		groups[tier] = append(groups[tier], d)
	}
	return groups
}
