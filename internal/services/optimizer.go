package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

// Algorithm identifiers reported on results.
const (
	AlgorithmGreedy       = "Nearest Neighbor"
	AlgorithmGreedyTiered = "Nearest Neighbor + Priority Handling"
	AlgorithmSearch       = "Evolutionary Optimizer"
)

// Optimizer is the route-optimization facade. It builds (or reuses) a
// distance table, computes a random-order baseline for reporting, and runs
// either the greedy constructor or the evolutionary search.
//
// Optimizer trusts its inputs per the external-validator contract: origin
// not in destinations, destinations distinct, priority keys referencing
// destinations with tiers in {1,2,3}.
type Optimizer struct {
	Distances ports.DistanceSource
	Params    SearchParams
}

func NewOptimizer(distances ports.DistanceSource) *Optimizer {
	return &Optimizer{
		Distances: distances,
		Params:    DefaultSearchParams(),
	}
}

// OptimizeRequest carries one optimization call's inputs.
//
// Table, when non-nil, is reused instead of rebuilding; it must cover
// {origin} ∪ destinations. Seed fixes the random source for the baseline
// shuffle and the evolutionary search; zero draws a time-based seed.
type OptimizeRequest struct {
	Origin       string
	Destinations []string
	Priorities   map[string]domain.PriorityTier
	UseSearch    bool
	Table        domain.DistanceTable
	Seed         int64
}

// Optimize plans a route over the request's destination set.
//
// An empty destination set yields the trivial single-node route with zero
// distance. Unknown locations surface as *domain.UnknownLocationError,
// untouched. With UseSearch the evolutionary result is returned even when
// its raw distance is worse than greedy's: it respects priority ordering,
// and the greedy figure is attached for comparison only.
func (o *Optimizer) Optimize(ctx context.Context, req OptimizeRequest) (_ *domain.OptimizationResult, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)
	start := time.Now()

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	table := req.Table
	if table == nil {
		all := make([]string, 0, len(req.Destinations)+1)
		all = append(all, req.Origin)
		all = append(all, req.Destinations...)

		table, err = o.Distances.BuildTable(ctx, all)
		if err != nil {
			return nil, fmt.Errorf("optimize route: %w", err)
		}
	}

	// Random-order baseline, for reporting "improvement" only. Never a
	// candidate for the returned route.
	shuffled := make([]string, len(req.Destinations))
	copy(shuffled, req.Destinations)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	baseline := make(domain.Route, 0, len(shuffled)+1)
	baseline = append(baseline, req.Origin)
	baseline = append(baseline, shuffled...)
	baselineKm := round2(TotalDistance(baseline, table))

	var (
		route     domain.Route
		algorithm string
		search    *domain.SearchMetrics
	)

	if req.UseSearch {
		sr := RunSearch(req.Origin, req.Destinations, table, req.Priorities, o.Params, rng)
		route = sr.Route
		algorithm = AlgorithmSearch

		// Greedy comparison always uses plain nearest neighbor, without
		// priority grouping, so the comparison shows what priority
		// compliance costs in raw distance.
		greedy := Build(req.Origin, req.Destinations, table)
		greedyKm := round2(TotalDistance(greedy, table))
		searchKm := round2(TotalDistance(route, table))

		search = &domain.SearchMetrics{
			Generations:           sr.Generations,
			PriorityViolations:    sr.PriorityViolations,
			FitnessImprovementPct: math.Round(sr.FitnessImprovementPct*10) / 10,
			GreedyDistanceKm:      greedyKm,
			Convergence:           sr.Convergence,
		}

		log.Debug().
			Float64("search_km", searchKm).
			Float64("greedy_km", greedyKm).
			Int("priority_violations", sr.PriorityViolations).
			Msg("evolutionary search finished")
	} else {
		if len(req.Priorities) > 0 {
			route = BuildTiered(req.Origin, req.Destinations, req.Priorities, table)
			algorithm = AlgorithmGreedyTiered
		} else {
			route = Build(req.Origin, req.Destinations, table)
			algorithm = AlgorithmGreedy
		}
	}

	totalKm := round2(TotalDistance(route, table))
	savedKm := round2(baselineKm - totalKm)
	improvementPct := 0.0
	if baselineKm > 0 {
		improvementPct = math.Round(savedKm/baselineKm*1000) / 10
	}

	obs.OptimizationsTotal.WithLabelValues(algorithm).Inc()

	return &domain.OptimizationResult{
		Route:              route,
		TotalDistanceKm:    totalKm,
		BaselineDistanceKm: baselineKm,
		DistanceSavedKm:    savedKm,
		ImprovementPct:     improvementPct,
		Algorithm:          algorithm,
		ExecutionMs:        math.Round(float64(time.Since(start).Microseconds())/10) / 100,
		CitiesProcessed:    len(req.Destinations) + 1,
		Search:             search,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
