package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Port: a read-only mapping from location identifier to coordinates.
type LocationRegistry interface {
	// Return the coordinates for an identifier.
	// Fails with *domain.UnknownLocationError when the identifier is absent.
	Lookup(ctx context.Context, id string) (domain.Coordinates, error)
	// Return every known identifier in a stable order.
	AllIDs(ctx context.Context) ([]string, error)
}
