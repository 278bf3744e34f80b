package outline

import (
	"fmt"
	"math"
)

// Weights splits the confidence score across the scoring signals. The
// font-size weight is fixed at 0.40 by contract; the remaining signals are
// configurable but must sum to 0.60 so the total is 1.0.
type Weights struct {
	FontSize float64
	Pattern  float64
	Content  float64
	Spatial  float64
	Context  float64
}

// DefaultWeights returns the standard signal split.
func DefaultWeights() Weights {
	return Weights{
		FontSize: 0.40,
		Pattern:  0.25,
		Content:  0.20,
		Spatial:  0.10,
		Context:  0.05,
	}
}

const (
	fixedFontSizeWeight = 0.40
	weightEpsilon       = 1e-9
)

// Config holds the tuning knobs for outline extraction. Construct with
// NewConfig or start from DefaultConfig; invalid values are rejected up
// front, never clamped.
type Config struct {
	// ConfidenceThreshold is the heading acceptance cutoff in [0,1].
	ConfidenceThreshold float64
	// TitleConfidenceThreshold is the title acceptance cutoff in [0,1].
	TitleConfidenceThreshold float64
	// MaxHeadingWords is the soft length cutoff before long candidates are
	// penalized.
	MaxHeadingWords int
	// MinFontSizeRatio is the size-vs-body ratio below which a block needs
	// pattern or keyword evidence to qualify as a heading.
	MinFontSizeRatio float64
	// ValidateHierarchy enables the nesting correction pass.
	ValidateHierarchy bool
	// Weights is the signal split used by the scorer.
	Weights Weights
}

// DefaultConfig returns the documented defaults. The result always passes
// Validate.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold:      0.5,
		TitleConfidenceThreshold: 0.3,
		MaxHeadingWords:          15,
		MinFontSizeRatio:         1.1,
		ValidateHierarchy:        true,
		Weights:                  DefaultWeights(),
	}
}

// NewConfig validates cfg and returns it, or a descriptive error.
func NewConfig(cfg Config) (Config, error) {
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its documented bounds.
func (c Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold %.3f outside [0,1]", c.ConfidenceThreshold)
	}
	if c.TitleConfidenceThreshold < 0 || c.TitleConfidenceThreshold > 1 {
		return fmt.Errorf("title confidence threshold %.3f outside [0,1]", c.TitleConfidenceThreshold)
	}
	if c.MaxHeadingWords <= 0 {
		return fmt.Errorf("max heading words must be positive, got %d", c.MaxHeadingWords)
	}
	if c.MinFontSizeRatio < 1 {
		return fmt.Errorf("min font size ratio must be >= 1, got %.3f", c.MinFontSizeRatio)
	}
	return c.Weights.Validate()
}

// Validate checks that the font-size weight is fixed at 0.40, no weight is
// negative, and the weights sum to 1.0.
func (w Weights) Validate() error {
	if math.Abs(w.FontSize-fixedFontSizeWeight) > weightEpsilon {
		return fmt.Errorf("font size weight is fixed at %.2f, got %.3f", fixedFontSizeWeight, w.FontSize)
	}
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"pattern", w.Pattern},
		{"content", w.Content},
		{"spatial", w.Spatial},
		{"context", w.Context},
	} {
		if v.value < 0 {
			return fmt.Errorf("%s weight must not be negative, got %.3f", v.name, v.value)
		}
	}
	sum := w.FontSize + w.Pattern + w.Content + w.Spatial + w.Context
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}
