package dto

type RecalculateRequest struct {
	CurrentPosition       string         `json:"current_position"`
	RemainingDestinations []string       `json:"remaining_destinations"`
	Priorities            map[string]int `json:"priorities,omitempty"`
	UseSearch             bool           `json:"use_search"`
}

type AddCitiesRequest struct {
	CurrentPosition string         `json:"current_position"`
	ExistingRoute   []string       `json:"existing_route"`
	NewCities       []string       `json:"new_cities"`
	Priorities      map[string]int `json:"priorities,omitempty"`
	UseSearch       bool           `json:"use_search"`
}

type RemoveCitiesRequest struct {
	CurrentPosition string         `json:"current_position"`
	ExistingRoute   []string       `json:"existing_route"`
	CitiesToRemove  []string       `json:"cities_to_remove"`
	Priorities      map[string]int `json:"priorities,omitempty"`
	UseSearch       bool           `json:"use_search"`
}

type UpdatePrioritiesRequest struct {
	CurrentPosition       string         `json:"current_position"`
	RemainingDestinations []string       `json:"remaining_destinations"`
	OldPriorities         map[string]int `json:"old_priorities,omitempty"`
	NewPriorities         map[string]int `json:"new_priorities"`
	UseSearch             bool           `json:"use_search"`
}

type BulkUpdateRequest struct {
	CurrentPosition   string         `json:"current_position"`
	ExistingRoute     []string       `json:"existing_route"`
	CitiesToAdd       []string       `json:"cities_to_add,omitempty"`
	CitiesToRemove    []string       `json:"cities_to_remove,omitempty"`
	UpdatedPriorities map[string]int `json:"updated_priorities,omitempty"`
	UseSearch         bool           `json:"use_search"`
}

type RecalculationMetadata struct {
	CurrentPosition   string  `json:"currentPosition"`
	RemainingCities   int     `json:"remainingCities"`
	TotalRecalcTimeMs float64 `json:"totalRecalcTimeMs"`
}

type PriorityChangeInfo struct {
	City        string `json:"city"`
	OldPriority *int   `json:"oldPriority"`
	NewPriority *int   `json:"newPriority"`
}

type ChangeMetadata struct {
	Operation            string               `json:"operation"`
	CitiesAdded          []string             `json:"citiesAdded,omitempty"`
	CitiesRemoved        []string             `json:"citiesRemoved,omitempty"`
	PriorityChanges      []PriorityChangeInfo `json:"priorityChanges,omitempty"`
	PrioritiesUpdated    bool                 `json:"prioritiesUpdated"`
	RecalculationSkipped bool                 `json:"recalculationSkipped"`
	SkipReason           string               `json:"skipReason,omitempty"`
	TotalOperationTimeMs float64              `json:"totalOperationTimeMs"`
}

type UpdateResponse struct {
	Success         bool                   `json:"success"`
	Route           []string               `json:"route"`
	TotalDistanceKm float64                `json:"totalDistanceKm"`
	EstimatedHours  float64                `json:"estimatedHours"`
	Optimization    *OptimizationInfo      `json:"optimization,omitempty"`
	Recalculation   *RecalculationMetadata `json:"recalculationMetadata,omitempty"`
	Change          ChangeMetadata         `json:"changeMetadata"`
}
