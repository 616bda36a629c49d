package match

import (
	"fmt"
	"time"
)

// Defaults for the matching configuration.
const (
	DefaultAxisDistanceThreshold = 3.0
	DefaultMinResults            = 3
	DefaultMaxResults            = 12
	DefaultVectorTimeout         = 10 * time.Second
)

// Config tunes the matching engine.
type Config struct {
	// AxisDistanceThreshold gates Tier-2 acceptance: axis results are
	// only returned when the best distance is strictly below it.
	AxisDistanceThreshold float64

	// MinResults is advisory. Only the Tier-3 fallback chain tries to
	// reach it; Tier 1 and 2 return whatever they found.
	MinResults int

	// MaxResults caps the output of every tier.
	MaxResults int

	// MinExactComponents drops Tier-1 hits with fewer components, so
	// low-specificity exact matches can be forced through the axis
	// tiers instead. Zero keeps every exact hit.
	MinExactComponents int

	// VectorTimeout bounds the Tier-3 embedding query. An expired or
	// failed query degrades to the category fallback.
	VectorTimeout time.Duration
}

// ApplyDefaults fills zero values with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.AxisDistanceThreshold == 0 {
		c.AxisDistanceThreshold = DefaultAxisDistanceThreshold
	}
	if c.MinResults == 0 {
		c.MinResults = DefaultMinResults
	}
	if c.MaxResults == 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.VectorTimeout == 0 {
		c.VectorTimeout = DefaultVectorTimeout
	}
}

// Validate checks the configuration after defaults were applied.
func (c *Config) Validate() error {
	if c.AxisDistanceThreshold < 0 {
		return fmt.Errorf("%w: axis distance threshold must not be negative", ErrInvalidConfig)
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("%w: max results must be at least 1", ErrInvalidConfig)
	}
	if c.MinResults < 0 || c.MinResults > c.MaxResults {
		return fmt.Errorf("%w: min results must be within [0, max results]", ErrInvalidConfig)
	}
	if c.MinExactComponents < 0 {
		return fmt.Errorf("%w: min exact components must not be negative", ErrInvalidConfig)
	}
	if c.VectorTimeout < 0 {
		return fmt.Errorf("%w: vector timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
