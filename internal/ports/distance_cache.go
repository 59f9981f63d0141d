package ports

import "context"

// Optional persistent cache for computed pair distances, keyed by the
// unordered location pair. Sits behind the in-process memo.
type DistanceCache interface {
	// Return a cached distance and whether it was present.
	Get(ctx context.Context, a, b string) (float64, bool, error)
	// Store a computed distance.
	Put(ctx context.Context, a, b string, km float64) error
}
