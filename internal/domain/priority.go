package domain

// PriorityTier is the urgency class of a delivery stop.
// Lower values are more urgent; stops without an explicit tier default to TierLow.
type PriorityTier int

const (
	TierUrgent PriorityTier = 1
	TierMedium PriorityTier = 2
	TierLow    PriorityTier = 3
)

// DefaultTier is assigned to destinations absent from a priority mapping.
const DefaultTier = TierLow

func (t PriorityTier) Valid() bool {
	return t >= TierUrgent && t <= TierLow
}

// TierOf resolves a destination's tier from a (possibly nil) priority mapping.
func TierOf(priorities map[string]PriorityTier, id string) PriorityTier {
	if priorities == nil {
		return DefaultTier
	}
	if t, ok := priorities[id]; ok {
		return t
	}
	return DefaultTier
}
