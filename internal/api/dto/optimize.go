package dto

import "route-optimizer-service/internal/domain"

type OptimizeOptions struct {
	UseSearch bool `json:"use_search"`
}

type OptimizeRequest struct {
	Start        string           `json:"start"`
	Destinations []string         `json:"destinations"`
	Priorities   map[string]int   `json:"priorities,omitempty"`
	Options      *OptimizeOptions `json:"options,omitempty"`
}

type SearchMetricsResponse struct {
	Generations               int                       `json:"generations"`
	PriorityViolations        int                       `json:"priorityViolations"`
	FitnessImprovementPercent float64                   `json:"fitnessImprovementPercent"`
	ConvergenceHistory        []domain.ConvergencePoint `json:"convergenceHistory"`
}

type OptimizationInfo struct {
	Algorithm             string                 `json:"algorithm"`
	CalculationTimeMs     float64                `json:"calculationTimeMs"`
	SavedDistanceKm       float64                `json:"savedDistanceKm"`
	ImprovementPercentage float64                `json:"improvementPercentage"`
	CitiesProcessed       int                    `json:"citiesProcessed"`
	BaselineDistanceKm    float64                `json:"baselineDistanceKm"`
	GreedyDistanceKm      *float64               `json:"greedyDistanceKm,omitempty"`
	SearchMetrics         *SearchMetricsResponse `json:"searchMetrics,omitempty"`
}

type OptimizeResponse struct {
	Success         bool             `json:"success"`
	Route           []string         `json:"route"`
	TotalDistanceKm float64          `json:"totalDistanceKm"`
	EstimatedHours  float64          `json:"estimatedHours"`
	Summary         string           `json:"summary"`
	Optimization    OptimizationInfo `json:"optimization"`
	MapsLink        string           `json:"mapsLink"`
}
