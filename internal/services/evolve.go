package services

import (
	"math"
	"math/rand"
	"sort"

	"route-optimizer-service/internal/domain"
)

// SearchParams tunes the evolutionary search. Zero values fall back to the
// defaults; the penalty weight must stay high enough that a single priority
// violation dominates any realistic distance difference.
type SearchParams struct {
	PopulationSize  int
	Generations     int
	MutationRate    float64
	PriorityPenalty float64
}

// DefaultSearchParams matches the tuning the system shipped with.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		PopulationSize:  40,
		Generations:     80,
		MutationRate:    0.15,
		PriorityPenalty: 5000.0,
	}
}

func (p SearchParams) withDefaults() SearchParams {
	d := DefaultSearchParams()
	if p.PopulationSize <= 0 {
		p.PopulationSize = d.PopulationSize
	}
	if p.Generations <= 0 {
		p.Generations = d.Generations
	}
	if p.MutationRate <= 0 {
		p.MutationRate = d.MutationRate
	}
	if p.PriorityPenalty <= 0 {
		p.PriorityPenalty = d.PriorityPenalty
	}
	return p
}

// candidate is one member of the search population: a destination
// permutation (origin excluded) plus its fitness under the current scoring.
type candidate struct {
	perm    []string
	fitness float64
}

// SearchResult reports the best route found plus run diagnostics.
type SearchResult struct {
	Route                 domain.Route
	BestFitness           float64
	InitialFitness        float64
	FitnessImprovementPct float64
	PriorityViolations    int
	Generations           int
	Convergence           []domain.ConvergencePoint
}

// RunSearch evolves a population of destination orderings for a fixed
// generation budget and returns the best candidate seen across all
// generations, tracked incrementally (not necessarily the final
// generation's best).
//
// Per generation: score every candidate, keep the top half by fitness
// (truncation selection), then refill by order-preserving crossover between
// parents drawn uniformly with replacement from the survivors, mutating each
// child with probability MutationRate. There is no early stop; the fixed
// budget keeps worst-case latency predictable.
//
// Randomness comes exclusively from rng so runs are reproducible.
func RunSearch(
	origin string,
	destinations []string,
	table domain.DistanceTable,
	priorities map[string]domain.PriorityTier,
	params SearchParams,
	rng *rand.Rand,
) SearchResult {
	params = params.withDefaults()

	// Crossover and mutation need at least 2 destinations to be defined.
	if len(destinations) < 2 {
		route := assemble(origin, destinations)
		fitness := Fitness(route, table, priorities, params.PriorityPenalty)
		return SearchResult{
			Route:              route,
			BestFitness:        fitness,
			InitialFitness:     fitness,
			PriorityViolations: PriorityViolations(route, priorities),
		}
	}

	population := seedPopulation(destinations, priorities, params.PopulationSize, rng)

	initialFitness := Fitness(assemble(origin, population[0].perm), table, priorities, params.PriorityPenalty)
	bestFitness := math.Inf(1)
	var bestPerm []string
	var convergence []domain.ConvergencePoint

	for generation := 0; generation < params.Generations; generation++ {
		for i := range population {
			population[i].fitness = Fitness(assemble(origin, population[i].perm), table, priorities, params.PriorityPenalty)
		}
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness < population[j].fitness
		})

		if population[0].fitness < bestFitness {
			bestFitness = population[0].fitness
			bestPerm = append(bestPerm[:0], population[0].perm...)
		}

		if generation%10 == 0 || generation == params.Generations-1 {
			convergence = append(convergence, domain.ConvergencePoint{
				Generation:  generation + 1,
				BestFitness: math.Round(bestFitness*100) / 100,
			})
		}

		survivors := population[:params.PopulationSize/2]

		next := make([]candidate, 0, params.PopulationSize)
		for _, s := range survivors {
			next = append(next, candidate{perm: clonePerm(s.perm)})
		}
		for len(next) < params.PopulationSize {
			parentA := survivors[rng.Intn(len(survivors))].perm
			parentB := survivors[rng.Intn(len(survivors))].perm

			child := orderCrossover(parentA, parentB, rng)
			if rng.Float64() < params.MutationRate {
				swapMutate(child, rng)
			}
			next = append(next, candidate{perm: child})
		}

		population = next
	}

	route := assemble(origin, bestPerm)
	improvement := 0.0
	if initialFitness > 0 {
		improvement = (initialFitness - bestFitness) / initialFitness * 100
	}

	return SearchResult{
		Route:                 route,
		BestFitness:           bestFitness,
		InitialFitness:        initialFitness,
		FitnessImprovementPct: improvement,
		PriorityViolations:    PriorityViolations(route, priorities),
		Generations:           params.Generations,
		Convergence:           convergence,
	}
}

// seedPopulation builds the initial population. With priorities present,
// half the population is tier-respecting (shuffled within each tier, tiers
// concatenated ascending) to speed convergence toward violation-free
// routes; the rest is uniformly random.
func seedPopulation(destinations []string, priorities map[string]domain.PriorityTier, size int, rng *rand.Rand) []candidate {
	population := make([]candidate, 0, size)

	if len(priorities) > 0 {
		groups := groupByTier(destinations, priorities)
		for i := 0; i < size/2; i++ {
			perm := make([]string, 0, len(destinations))
			for _, tier := range []domain.PriorityTier{domain.TierUrgent, domain.TierMedium, domain.TierLow} {
				group := clonePerm(groups[tier])
				rng.Shuffle(len(group), func(a, b int) {
					group[a], group[b] = group[b], group[a]
				})
				perm = append(perm, group...)
			}
			population = append(population, candidate{perm: perm})
		}
	}

	for len(population) < size {
		perm := clonePerm(destinations)
		rng.Shuffle(len(perm), func(a, b int) {
			perm[a], perm[b] = perm[b], perm[a]
		})
		population = append(population, candidate{perm: perm})
	}

	return population
}

// orderCrossover implements order-preserving crossover (OX): a random
// contiguous sub-range [i, j) of parent A is copied verbatim into the child
// at the same positions, and the remaining slots are filled left to right
// with parent B's destinations in their relative order, skipping any already
// placed. The child is always a valid permutation of the parents' set.
func orderCrossover(parentA, parentB []string, rng *rand.Rand) []string {
	n := len(parentA)
	i := rng.Intn(n)
	j := i + rng.Intn(n-i+1)

	child := make([]string, n)
	placed := make(map[string]bool, j-i)
	for k := i; k < j; k++ {
		child[k] = parentA[k]
		placed[parentA[k]] = true
	}

	bIdx := 0
	for k := 0; k < n; k++ {
		if k >= i && k < j {
			continue
		}
		for placed[parentB[bIdx]] {
			bIdx++
		}
		child[k] = parentB[bIdx]
		bIdx++
	}

	return child
}

// swapMutate exchanges two destination slots chosen uniformly with
// replacement; coinciding positions make the mutation a no-op. The origin is
// not part of the permutation and can never be touched.
func swapMutate(perm []string, rng *rand.Rand) {
	i := rng.Intn(len(perm))
	j := rng.Intn(len(perm))
	perm[i], perm[j] = perm[j], perm[i]
}

func assemble(origin string, perm []string) domain.Route {
	route := make(domain.Route, 0, len(perm)+1)
	route = append(route, origin)
	return append(route, perm...)
}

func clonePerm(perm []string) []string {
	out := make([]string, len(perm))
	copy(out, perm)
	return out
}
