package matcher

import (
	"time"

	"github.com/tickermatch/internal/normalize"
)

// Config is the immutable configuration record for the matching cascade.
// Construct it once with DefaultConfig, adjust fields, and pass it to New;
// the matcher never mutates it.
type Config struct {
	// FuzzyThreshold is the minimum 0-100 fuzzy score for a candidate to
	// count as strong. A score exactly at the threshold is included.
	FuzzyThreshold float64

	// MaxCandidates caps the fuzzy candidate pool generated per query.
	MaxCandidates int

	// TopMatchLimit caps the ranked matches surfaced to callers.
	TopMatchLimit int

	// NgramMin and NgramMax bound the character n-gram sizes of the
	// vector space fitted over the corpus titles.
	NgramMin int
	NgramMax int

	// Suffixes and FundKeywords feed name normalization and ETF filtering.
	Suffixes     []string
	FundKeywords []string

	// OpenAI fallback parameters.
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float32
	OpenAITimeout     time.Duration

	// Debug enables per-stage trace logging.
	Debug bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold:    90,
		MaxCandidates:     10,
		TopMatchLimit:     5,
		NgramMin:          2,
		NgramMax:          5,
		Suffixes:          normalize.DefaultSuffixes,
		FundKeywords:      normalize.DefaultFundKeywords,
		OpenAIModel:       "gpt-4o-mini",
		OpenAIMaxTokens:   20,
		OpenAITemperature: 0,
		OpenAITimeout:     30 * time.Second,
	}
}
