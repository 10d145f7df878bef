package decision

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadConfig reads engine settings stored under key (usually "decision") and
// lays them over DefaultConfig. Settings that are absent or zero keep their
// defaults; a non-empty context_rules list replaces the built-in rules.
func LoadConfig(v *viper.Viper, key string) (Config, error) {
	cfg := DefaultConfig()
	if !v.IsSet(key) {
		return cfg, nil
	}

	var raw Config
	if err := v.UnmarshalKey(key, &raw); err != nil {
		return Config{}, fmt.Errorf("decision config: %w", err)
	}
	if len(raw.ContextRules) > 0 {
		cfg.ContextRules = raw.ContextRules
	}
	if raw.ContextWeight > 0 {
		cfg.ContextWeight = raw.ContextWeight
	}
	if raw.MaxContextAdjustment > 0 {
		cfg.MaxContextAdjustment = raw.MaxContextAdjustment
	}
	if raw.MaxAlternatives > 0 {
		cfg.MaxAlternatives = raw.MaxAlternatives
	}
	if raw.MinScore > 0 {
		cfg.MinScore = raw.MinScore
	}
	return cfg, nil
}
