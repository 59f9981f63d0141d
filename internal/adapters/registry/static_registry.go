package registry

import (
	"context"
	"sort"

	"route-optimizer-service/internal/domain"
)

// DefaultCities is the built-in coordinate table used when no database
// registry is configured. Coordinates are decimal degrees.
var DefaultCities = map[string]domain.Coordinates{
	"Mumbai":    {Lat: 19.0760, Lon: 72.8777},
	"Delhi":     {Lat: 28.7041, Lon: 77.1025},
	"Bangalore": {Lat: 12.9716, Lon: 77.5946},
	"Chennai":   {Lat: 13.0827, Lon: 80.2707},
	"Kolkata":   {Lat: 22.5726, Lon: 88.3639},
	"Hyderabad": {Lat: 17.3850, Lon: 78.4867},
	"Pune":      {Lat: 18.5204, Lon: 73.8567},
	"Ahmedabad": {Lat: 23.0225, Lon: 72.5714},
	"Jaipur":    {Lat: 26.9124, Lon: 75.7873},
	"Lucknow":   {Lat: 26.8467, Lon: 80.9462},
}

// StaticRegistry is an in-memory LocationRegistry. The backing map is never
// mutated after construction, so it is safe for concurrent use.
type StaticRegistry struct {
	coords map[string]domain.Coordinates
}

func NewStaticRegistry() *StaticRegistry {
	return NewStaticRegistryFrom(DefaultCities)
}

func NewStaticRegistryFrom(coords map[string]domain.Coordinates) *StaticRegistry {
	m := make(map[string]domain.Coordinates, len(coords))
	for id, c := range coords {
		m[id] = c
	}
	return &StaticRegistry{coords: m}
}

func (r *StaticRegistry) Lookup(_ context.Context, id string) (domain.Coordinates, error) {
	c, ok := r.coords[id]
	if !ok {
		return domain.Coordinates{}, &domain.UnknownLocationError{ID: id}
	}
	return c, nil
}

func (r *StaticRegistry) AllIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.coords))
	for id := range r.coords {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
