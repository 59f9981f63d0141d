package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Contract for computing geometric distances between registered locations.
type DistanceSource interface {
	// Return the great-circle distance between two locations in kilometers.
	Distance(ctx context.Context, a, b string) (float64, error)
	// Return the all-pairs distance table for a location set.
	BuildTable(ctx context.Context, ids []string) (domain.DistanceTable, error)
}
