package geodist

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

// Earth radius in kilometers.
const earthRadiusKm = 6371.0

// DefaultMemoCapacity bounds the in-process distance memo.
const DefaultMemoCapacity = 1000

// pairKey is the unordered location pair. A and B are stored in lexical
// order so (x, y) and (y, x) share one memo entry.
type pairKey struct {
	A, B string
}

func keyFor(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{A: a, B: b}
}

// MemoStats exposes memo hit/miss/size counters for observability.
type MemoStats struct {
	Hits     int64
	Misses   int64
	Size     int
	Capacity int
}

func (s MemoStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Model computes great-circle distances between registered locations.
//
// Lookups are memoized per unordered pair in a bounded LRU owned by the
// instance, so tests and concurrent workers can hold isolated memos. The
// LRU is safe for concurrent use; an optional persistent cache sits behind
// it for cross-process reuse.
type Model struct {
	registry ports.LocationRegistry
	cache    ports.DistanceCache
	memo     *lru.Cache[pairKey, float64]
	capacity int
	hits     atomic.Int64
	misses   atomic.Int64
}

func NewModel(registry ports.LocationRegistry, opts ...Option) (*Model, error) {
	m := &Model{
		registry: registry,
		capacity: DefaultMemoCapacity,
	}
	for _, opt := range opts {
		opt(m)
	}

	c, err := lru.New[pairKey, float64](m.capacity)
	if err != nil {
		return nil, fmt.Errorf("geodist: create memo: %w", err)
	}
	m.memo = c

	return m, nil
}

type Option func(*Model)

// WithMemoCapacity overrides the memo's LRU capacity.
func WithMemoCapacity(n int) Option {
	return func(m *Model) { m.capacity = n }
}

// WithCache adds a persistent distance cache behind the memo.
func WithCache(c ports.DistanceCache) Option {
	return func(m *Model) { m.cache = c }
}

// Distance returns the distance between two locations in kilometers,
// rounded to two decimals. Identical identifiers are zero without any
// registry lookup. Unknown identifiers fail with *domain.UnknownLocationError.
func (m *Model) Distance(ctx context.Context, a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}

	key := keyFor(a, b)
	if km, ok := m.memo.Get(key); ok {
		m.hits.Add(1)
		return km, nil
	}
	m.misses.Add(1)

	if m.cache != nil {
		km, ok, err := m.cache.Get(ctx, key.A, key.B)
		if err != nil {
			// The persistent cache is an optimization, not a dependency.
			log.Warn().Err(err).Str("a", a).Str("b", b).Msg("distance cache read failed")
		} else if ok {
			m.memo.Add(key, km)
			return km, nil
		}
	}

	ca, err := m.registry.Lookup(ctx, a)
	if err != nil {
		return 0, err
	}
	cb, err := m.registry.Lookup(ctx, b)
	if err != nil {
		return 0, err
	}

	km := round2(greatCircleKm(ca, cb))
	m.memo.Add(key, km)

	if m.cache != nil {
		if err := m.cache.Put(ctx, key.A, key.B, km); err != nil {
			log.Warn().Err(err).Str("a", a).Str("b", b).Msg("distance cache write failed")
		}
	}

	return km, nil
}

// BuildTable computes the all-pairs distance table for a location set.
// O(n²) Distance calls through the memo; deterministic and order-independent.
func (m *Model) BuildTable(ctx context.Context, ids []string) (domain.DistanceTable, error) {
	table := make(domain.DistanceTable, len(ids))
	for _, a := range ids {
		row := make(map[string]float64, len(ids))
		for _, b := range ids {
			km, err := m.Distance(ctx, a, b)
			if err != nil {
				return nil, err
			}
			row[b] = km
		}
		table[a] = row
	}
	return table, nil
}

func (m *Model) Stats() MemoStats {
	return MemoStats{
		Hits:     m.hits.Load(),
		Misses:   m.misses.Load(),
		Size:     m.memo.Len(),
		Capacity: m.capacity,
	}
}

// greatCircleKm computes the great-circle distance between two coordinates.
//
// Primary formula is the spherical law of cosines. Rounding inside acos can
// push the argument out of [-1, 1] for near-identical or antipodal points
// and yield NaN; the haversine formula is the fallback for any non-finite
// result. Same units, same zero-distance handling, no further fallback.
func greatCircleKm(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	deltaLon := toRadians(b.Lon - a.Lon)

	d := earthRadiusKm * math.Acos(
		math.Sin(lat1)*math.Sin(lat2)+math.Cos(lat1)*math.Cos(lat2)*math.Cos(deltaLon))
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return haversineKm(a, b)
	}
	return d
}

// haversineKm is the fallback great-circle computation:
//
//	h = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)
//	d = 2R·asin(√h)
func haversineKm(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	deltaLat := toRadians(b.Lat - a.Lat)
	deltaLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
