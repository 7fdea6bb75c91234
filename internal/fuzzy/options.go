// Package fuzzy is an immutable, weighted, multi-field approximate string
// index. Each record holds one or more text values per key; a query is
// matched against every value as an approximate substring and the per-value
// scores are folded into one record score in [0,1], 0 being a perfect match.
package fuzzy

import (
	"errors"
	"fmt"
)

// MaxPatternLength is the longest query fragment scored in one pass. Longer
// queries are split into chunks of this many runes.
const MaxPatternLength = 32

var (
	ErrNoKeys           = errors.New("fuzzy index needs at least one key")
	ErrInvalidWeight    = errors.New("key weight must be positive")
	ErrInvalidThreshold = errors.New("threshold must be within [0,1]")
	ErrFieldCount       = errors.New("record field count does not match keys")
)

// Key names a searchable field and its relative weight.
type Key struct {
	Name   string
	Weight float64
}

// Options tune the matcher.
type Options struct {
	// Threshold is the worst per-value score still counted as a match.
	Threshold float64

	// Location is where in a value a match is expected to start.
	Location int

	// Distance is how far (in runes) from Location a match may start before
	// its score degrades by a full point. Only used when IgnoreLocation is false.
	Distance int

	// IgnoreLocation scores a match the same wherever it occurs in a value.
	IgnoreLocation bool

	// MinMatchCharLength is the shortest contiguous fragment that pattern and
	// value must share for the value to match.
	MinMatchCharLength int

	// IgnoreFieldNorm disables the boost short values get over long ones.
	IgnoreFieldNorm bool
}

// DefaultOptions returns general purpose settings.
func DefaultOptions() Options {
	return Options{
		Threshold:          0.6,
		Location:           0,
		Distance:           100,
		MinMatchCharLength: 1,
	}
}

func (o Options) validate() error {
	if o.Threshold < 0 || o.Threshold > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, o.Threshold)
	}
	return nil
}
