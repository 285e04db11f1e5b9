package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the analysis engine. Callers distinguish error kinds
// with errors.Is; wrapped messages carry the specifics.
var (
	// ErrInvalidInput indicates malformed input data: an empty career
	// collection, a career without semesters, or bad semester keys.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidParameter indicates an out-of-range analysis parameter,
	// such as a similarity threshold outside [0.1, 0.8].
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Threshold bounds accepted by the equivalence detector and career clusterer.
const (
	MinThreshold = 0.1
	MaxThreshold = 0.8

	// DefaultThreshold is the documented fallback when the caller supplies
	// no threshold.
	DefaultThreshold = 0.5
)

// ValidateThreshold checks that t lies within [MinThreshold, MaxThreshold].
func ValidateThreshold(t float64) error {
	if t < MinThreshold || t > MaxThreshold {
		return fmt.Errorf("%w: threshold %.2f outside [%.1f, %.1f]",
			ErrInvalidParameter, t, MinThreshold, MaxThreshold)
	}
	return nil
}
