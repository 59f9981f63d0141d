package domain

// ConvergencePoint is one sample of the best fitness seen so far,
// recorded at fixed generation intervals for diagnostics.
type ConvergencePoint struct {
	Generation  int     `json:"generation"`
	BestFitness float64 `json:"best_fitness"`
}

// SearchMetrics describes an evolutionary-search run. Present on an
// OptimizationResult only when the search algorithm produced the route.
type SearchMetrics struct {
	Generations           int
	PriorityViolations    int
	FitnessImprovementPct float64
	GreedyDistanceKm      float64
	Convergence           []ConvergencePoint
}

// OptimizationResult is the outcome of a single optimization call.
// Baseline figures describe a uniformly random destination ordering and are
// reporting references only; they never influence route selection.
type OptimizationResult struct {
	Route              Route
	TotalDistanceKm    float64
	BaselineDistanceKm float64
	DistanceSavedKm    float64
	ImprovementPct     float64
	Algorithm          string
	ExecutionMs        float64
	CitiesProcessed    int
	Search             *SearchMetrics
}
