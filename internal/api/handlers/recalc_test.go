package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"route-optimizer-service/internal/adapters/geodist"
	"route-optimizer-service/internal/adapters/registry"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/services"
)

func newRecalcHandler(t *testing.T) *RecalcHandler {
	t.Helper()
	reg := registry.NewStaticRegistry()
	model, err := geodist.NewModel(reg)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	optimizer := services.NewOptimizer(model)
	return &RecalcHandler{
		Registry: reg,
		Updater:  services.NewUpdater(optimizer, reg),
	}
}

func decodeUpdate(t *testing.T, body []byte) dto.UpdateResponse {
	t.Helper()
	var res dto.UpdateResponse
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestRecalculateEndpoint(t *testing.T) {
	h := newRecalcHandler(t)

	rec := postJSON(t, h.Recalculate, "/api/recalculate", dto.RecalculateRequest{
		CurrentPosition:       "Bangalore",
		RemainingDestinations: []string{"Chennai", "Hyderabad"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	res := decodeUpdate(t, rec.Body.Bytes())
	if !res.Success {
		t.Error("success = false")
	}
	if len(res.Route) != 3 || res.Route[0] != "Bangalore" {
		t.Errorf("route = %v, want 3 stops from Bangalore", res.Route)
	}
	if res.Recalculation == nil {
		t.Fatal("recalculationMetadata missing")
	}
	if res.Recalculation.CurrentPosition != "Bangalore" || res.Recalculation.RemainingCities != 2 {
		t.Errorf("recalculationMetadata = %+v", res.Recalculation)
	}
	if res.Optimization == nil {
		t.Error("optimization missing")
	}
}

func TestRecalculateEndpointValidatesInput(t *testing.T) {
	h := newRecalcHandler(t)

	rec := postJSON(t, h.Recalculate, "/api/recalculate", dto.RecalculateRequest{
		CurrentPosition:       "Atlantis",
		RemainingDestinations: []string{"Chennai"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid start city: Atlantis") {
		t.Errorf("body %q missing invalid start message", rec.Body.String())
	}
}

func TestAddCitiesEndpoint(t *testing.T) {
	h := newRecalcHandler(t)

	rec := postJSON(t, h.AddCities, "/api/add-cities", dto.AddCitiesRequest{
		CurrentPosition: "Pune",
		ExistingRoute:   []string{"Mumbai", "Pune", "Bangalore"},
		NewCities:       []string{"Hyderabad"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	res := decodeUpdate(t, rec.Body.Bytes())
	if res.Route[0] != "Pune" {
		t.Errorf("route = %v, want origin Pune", res.Route)
	}
	if res.Change.Operation != "add_cities" {
		t.Errorf("operation = %q, want add_cities", res.Change.Operation)
	}
	if len(res.Change.CitiesAdded) != 1 || res.Change.CitiesAdded[0] != "Hyderabad" {
		t.Errorf("citiesAdded = %v, want [Hyderabad]", res.Change.CitiesAdded)
	}
}

func TestAddCitiesEndpointUnknownCity(t *testing.T) {
	h := newRecalcHandler(t)

	rec := postJSON(t, h.AddCities, "/api/add-cities", dto.AddCitiesRequest{
		CurrentPosition: "Pune",
		ExistingRoute:   []string{"Mumbai", "Pune", "Bangalore"},
		NewCities:       []string{"Atlantis"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `unknown location \"Atlantis\"`) {
		t.Errorf("body %q missing unknown location message", rec.Body.String())
	}
}

func TestRemoveCitiesEndpointSkipsPrefixOnlyRemovals(t *testing.T) {
	h := newRecalcHandler(t)

	rec := postJSON(t, h.RemoveCities, "/api/remove-cities", dto.RemoveCitiesRequest{
		CurrentPosition: "Bangalore",
		ExistingRoute:   []string{"Mumbai", "Pune", "Bangalore", "Chennai"},
		CitiesToRemove:  []string{"Mumbai", "Pune"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	res := decodeUpdate(t, rec.Body.Bytes())
	if !res.Change.RecalculationSkipped {
		t.Error("recalculationSkipped = false, want true")
	}
	if res.Change.SkipReason == "" {
		t.Error("skipReason missing")
	}
	if res.Optimization != nil {
		t.Errorf("optimization = %+v, want omitted when skipped", res.Optimization)
	}
	want := []string{"Mumbai", "Pune", "Bangalore", "Chennai"}
	if len(res.Route) != len(want) {
		t.Fatalf("route = %v, want unchanged %v", res.Route, want)
	}
	for i := range want {
		if res.Route[i] != want[i] {
			t.Fatalf("route = %v, want unchanged %v", res.Route, want)
		}
	}
}

func TestUpdatePrioritiesEndpoint(t *testing.T) {
	h := newRecalcHandler(t)

	rec := postJSON(t, h.UpdatePriorities, "/api/update-priorities", dto.UpdatePrioritiesRequest{
		CurrentPosition:       "Pune",
		RemainingDestinations: []string{"Bangalore", "Chennai"},
		OldPriorities:         map[string]int{"Bangalore": 1},
		NewPriorities:         map[string]int{"Bangalore": 2, "Chennai": 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	res := decodeUpdate(t, rec.Body.Bytes())
	if !res.Change.PrioritiesUpdated {
		t.Error("prioritiesUpdated = false")
	}
	if len(res.Change.PriorityChanges) != 2 {
		t.Fatalf("priorityChanges = %+v, want 2 entries", res.Change.PriorityChanges)
	}
	if res.Route[1] != "Chennai" {
		t.Errorf("route = %v, want urgent Chennai first", res.Route)
	}
}

func TestBulkUpdateEndpoint(t *testing.T) {
	h := newRecalcHandler(t)

	rec := postJSON(t, h.BulkUpdate, "/api/bulk-update", dto.BulkUpdateRequest{
		CurrentPosition:   "Pune",
		ExistingRoute:     []string{"Mumbai", "Pune", "Bangalore", "Chennai"},
		CitiesToAdd:       []string{"Hyderabad"},
		CitiesToRemove:    []string{"Chennai"},
		UpdatedPriorities: map[string]int{"Hyderabad": 1},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	res := decodeUpdate(t, rec.Body.Bytes())
	if res.Change.Operation != "bulk_update" {
		t.Errorf("operation = %q, want bulk_update", res.Change.Operation)
	}
	if res.Route[1] != "Hyderabad" {
		t.Errorf("route = %v, want urgent Hyderabad first", res.Route)
	}
	for _, stop := range res.Route {
		if stop == "Chennai" {
			t.Errorf("route %v still contains removed Chennai", res.Route)
		}
	}
}
