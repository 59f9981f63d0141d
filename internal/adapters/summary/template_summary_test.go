package summary

import (
	"strings"
	"testing"

	"route-optimizer-service/internal/domain"
)

func TestSummarizeFullRoute(t *testing.T) {
	s := NewTemplateSummarizer()
	result := &domain.OptimizationResult{
		Route:           domain.Route{"Mumbai", "Pune", "Bangalore", "Chennai"},
		TotalDistanceKm: 1432.5,
		DistanceSavedKm: 210.3,
		ImprovementPct:  12.8,
		Algorithm:       "Nearest Neighbor",
	}

	got := s.Summarize(result, nil)

	for _, want := range []string{
		"Optimized route from Mumbai",
		"through 2 cities",
		"to Chennai",
		"Nearest Neighbor",
		"1432.50 km",
		"saves 210.30 km",
		"12.8% improvement",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q missing %q", got, want)
		}
	}
}

func TestSummarizeListsUrgentStops(t *testing.T) {
	s := NewTemplateSummarizer()
	result := &domain.OptimizationResult{
		Route:           domain.Route{"Mumbai", "Chennai", "Pune"},
		TotalDistanceKm: 900,
		Algorithm:       "Nearest Neighbor + Priority Handling",
	}
	priorities := map[string]domain.PriorityTier{"Chennai": domain.TierUrgent}

	got := s.Summarize(result, priorities)
	if !strings.Contains(got, "Urgent deliveries scheduled first: Chennai") {
		t.Errorf("summary %q missing urgent stop listing", got)
	}
}

func TestSummarizeNoSavingsOmitsSavingsSentence(t *testing.T) {
	s := NewTemplateSummarizer()
	result := &domain.OptimizationResult{
		Route:           domain.Route{"Mumbai", "Pune"},
		TotalDistanceKm: 120,
		Algorithm:       "Nearest Neighbor",
	}

	got := s.Summarize(result, nil)
	if strings.Contains(got, "saves") {
		t.Errorf("summary %q mentions savings for a zero-savings result", got)
	}
}

func TestSummarizeDegenerateRoutes(t *testing.T) {
	s := NewTemplateSummarizer()

	if got := s.Summarize(&domain.OptimizationResult{}, nil); got != "No route computed." {
		t.Errorf("empty route summary = %q", got)
	}

	single := &domain.OptimizationResult{Route: domain.Route{"Mumbai"}}
	if got := s.Summarize(single, nil); !strings.Contains(got, "stays at Mumbai") {
		t.Errorf("single-node summary = %q", got)
	}
}
