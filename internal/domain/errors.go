package domain

import "fmt"

// UnknownLocationError reports a location identifier absent from the registry.
// It is fatal to the call that raised it and is propagated unchanged.
type UnknownLocationError struct {
	ID string
}

func (e *UnknownLocationError) Error() string {
	return fmt.Sprintf("unknown location %q", e.ID)
}
