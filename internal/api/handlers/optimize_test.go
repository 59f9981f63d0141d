package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"route-optimizer-service/internal/adapters/geodist"
	"route-optimizer-service/internal/adapters/registry"
	"route-optimizer-service/internal/adapters/summary"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/services"
)

func newOptimizeHandler(t *testing.T) *OptimizeHandler {
	t.Helper()
	reg := registry.NewStaticRegistry()
	model, err := geodist.NewModel(reg)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return &OptimizeHandler{
		Registry:   reg,
		Optimizer:  services.NewOptimizer(model),
		Summarizer: summary.NewTemplateSummarizer(),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestOptimizeEndpoint(t *testing.T) {
	h := newOptimizeHandler(t)

	rec := postJSON(t, h.Optimize, "/api/optimize", dto.OptimizeRequest{
		Start:        "Mumbai",
		Destinations: []string{"Pune", "Bangalore", "Chennai"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !res.Success {
		t.Error("success = false")
	}
	if len(res.Route) != 4 || res.Route[0] != "Mumbai" {
		t.Errorf("route = %v, want 4 stops starting at Mumbai", res.Route)
	}
	if res.TotalDistanceKm <= 0 {
		t.Errorf("totalDistanceKm = %v, want > 0", res.TotalDistanceKm)
	}
	// Greedy from Mumbai over these three cities is the optimal ordering, so
	// no random baseline can undercut it.
	if res.TotalDistanceKm > res.Optimization.BaselineDistanceKm {
		t.Errorf("totalDistanceKm %v exceeds baselineDistanceKm %v",
			res.TotalDistanceKm, res.Optimization.BaselineDistanceKm)
	}
	if res.EstimatedHours <= 0 {
		t.Errorf("estimatedHours = %v, want > 0", res.EstimatedHours)
	}
	if res.Optimization.Algorithm != services.AlgorithmGreedy {
		t.Errorf("algorithm = %q, want %q", res.Optimization.Algorithm, services.AlgorithmGreedy)
	}
	if res.Optimization.CitiesProcessed != 4 {
		t.Errorf("citiesProcessed = %d, want 4", res.Optimization.CitiesProcessed)
	}
	if !strings.HasPrefix(res.MapsLink, "https://www.google.com/maps/dir/Mumbai/") {
		t.Errorf("mapsLink = %q", res.MapsLink)
	}
	if res.Summary == "" {
		t.Error("summary missing")
	}
	if res.Optimization.SearchMetrics != nil {
		t.Error("searchMetrics present on a greedy run")
	}
}

func TestOptimizeEndpointWithSearch(t *testing.T) {
	h := newOptimizeHandler(t)

	rec := postJSON(t, h.Optimize, "/api/optimize", dto.OptimizeRequest{
		Start:        "Mumbai",
		Destinations: []string{"Pune", "Bangalore", "Chennai", "Hyderabad"},
		Priorities:   map[string]int{"Chennai": 1},
		Options:      &dto.OptimizeOptions{UseSearch: true},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var res dto.OptimizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Optimization.Algorithm != services.AlgorithmSearch {
		t.Errorf("algorithm = %q, want %q", res.Optimization.Algorithm, services.AlgorithmSearch)
	}
	if res.Optimization.SearchMetrics == nil {
		t.Fatal("searchMetrics missing on a search run")
	}
	if res.Optimization.SearchMetrics.PriorityViolations != 0 {
		t.Errorf("priorityViolations = %d, want 0", res.Optimization.SearchMetrics.PriorityViolations)
	}
	if res.Optimization.GreedyDistanceKm == nil {
		t.Error("greedyDistanceKm missing on a search run")
	}
	if res.Route[1] != "Chennai" {
		t.Errorf("route = %v, want urgent Chennai first", res.Route)
	}
}

func TestOptimizeEndpointRejectsGet(t *testing.T) {
	h := newOptimizeHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/optimize", nil)
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow = %q, want POST", allow)
	}
}

func TestOptimizeEndpointRejectsUnknownFields(t *testing.T) {
	h := newOptimizeHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/optimize",
		strings.NewReader(`{"start":"Mumbai","destinations":["Pune"],"bogus":true}`))
	rec := httptest.NewRecorder()
	h.Optimize(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestOptimizeEndpointValidation(t *testing.T) {
	h := newOptimizeHandler(t)

	manyCities := make([]string, MaxDestinations+1)
	for i := range manyCities {
		manyCities[i] = fmt.Sprintf("City%d", i)
	}

	cases := []struct {
		name    string
		req     dto.OptimizeRequest
		wantMsg string
	}{
		{
			name:    "missing start",
			req:     dto.OptimizeRequest{Destinations: []string{"Pune"}},
			wantMsg: "start city is required",
		},
		{
			name:    "no destinations",
			req:     dto.OptimizeRequest{Start: "Mumbai"},
			wantMsg: "at least 1 destination",
		},
		{
			name:    "too many destinations",
			req:     dto.OptimizeRequest{Start: "Mumbai", Destinations: manyCities},
			wantMsg: "maximum 20 destinations",
		},
		{
			name:    "unknown start",
			req:     dto.OptimizeRequest{Start: "Atlantis", Destinations: []string{"Pune"}},
			wantMsg: "invalid start city: Atlantis",
		},
		{
			name:    "unknown destination",
			req:     dto.OptimizeRequest{Start: "Mumbai", Destinations: []string{"Pune", "Atlantis"}},
			wantMsg: "invalid destination cities: Atlantis",
		},
		{
			name:    "duplicate destinations",
			req:     dto.OptimizeRequest{Start: "Mumbai", Destinations: []string{"Pune", "Pune"}},
			wantMsg: "duplicate cities",
		},
		{
			name:    "start in destinations",
			req:     dto.OptimizeRequest{Start: "Mumbai", Destinations: []string{"Mumbai", "Pune"}},
			wantMsg: "cannot be in destinations",
		},
		{
			name: "priority for non-destination",
			req: dto.OptimizeRequest{
				Start:        "Mumbai",
				Destinations: []string{"Pune"},
				Priorities:   map[string]int{"Chennai": 1},
			},
			wantMsg: "not in destinations",
		},
		{
			name: "priority out of range",
			req: dto.OptimizeRequest{
				Start:        "Mumbai",
				Destinations: []string{"Pune"},
				Priorities:   map[string]int{"Pune": 4},
			},
			wantMsg: "invalid priority 4",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Optimize, "/api/optimize", tc.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.wantMsg) {
				t.Errorf("body %q missing %q", rec.Body.String(), tc.wantMsg)
			}
		})
	}
}

func TestEstimatedHours(t *testing.T) {
	if got := estimatedHours(120); got != 2 {
		t.Errorf("estimatedHours(120) = %v, want 2", got)
	}
	if got := estimatedHours(0); got != 0 {
		t.Errorf("estimatedHours(0) = %v, want 0", got)
	}
	if got := estimatedHours(90); got != 1.5 {
		t.Errorf("estimatedHours(90) = %v, want 1.5", got)
	}
}
