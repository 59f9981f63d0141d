package ports

import "route-optimizer-service/internal/domain"

// Port: produces a human-readable explanation of an optimization result.
// The core functions completely without one; callers may substitute an
// external text-generation service.
type Summarizer interface {
	Summarize(result *domain.OptimizationResult, priorities map[string]domain.PriorityTier) string
}
