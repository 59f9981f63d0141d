package domain

// Route is an ordered visiting sequence of location identifiers.
// The first element is the origin (current position); the remainder is a
// permutation of the destination set with no repeats.
type Route []string

// Origin returns the fixed starting position, or "" for an empty route.
func (r Route) Origin() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Destinations returns the stops after the origin.
func (r Route) Destinations() []string {
	if len(r) <= 1 {
		return nil
	}
	return r[1:]
}

func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// DistanceTable maps (location, location) to distance in kilometers.
// Symmetric, zero on the diagonal.
type DistanceTable map[string]map[string]float64

// Lookup returns the stored distance between two locations.
// Missing entries report ok=false rather than a silent zero.
func (t DistanceTable) Lookup(a, b string) (float64, bool) {
	row, ok := t[a]
	if !ok {
		return 0, false
	}
	d, ok := row[b]
	return d, ok
}
