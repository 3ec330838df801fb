package config

import (
	"github.com/tickermatch/internal/matcher"
)

// MatcherConfig builds the matcher configuration from the environment,
// starting from the defaults. Suffix and keyword lists are code-level
// configuration and are not overridable per environment.
func MatcherConfig() matcher.Config {
	cfg := matcher.DefaultConfig()
	cfg.FuzzyThreshold = GetEnvFloat("FUZZY_MATCH_THRESHOLD", cfg.FuzzyThreshold)
	cfg.OpenAIModel = GetEnv("OPENAI_MODEL", cfg.OpenAIModel)
	cfg.OpenAIMaxTokens = GetEnvInt("OPENAI_MAX_TOKENS", cfg.OpenAIMaxTokens)
	cfg.OpenAITemperature = float32(GetEnvFloat("OPENAI_TEMPERATURE", float64(cfg.OpenAITemperature)))
	cfg.OpenAITimeout = GetEnvDuration("OPENAI_TIMEOUT", cfg.OpenAITimeout)
	cfg.Debug = GetEnvBool("MATCH_DEBUG", cfg.Debug)
	return cfg
}
