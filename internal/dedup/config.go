package dedup

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the duplicate-detection settings.
type Config struct {
	// Threshold is the minimum fuzzy name similarity (0-100) for two
	// names to count as a match. Higher = stricter, fewer false
	// positives. Default: 85.
	Threshold int

	// MatchByEmail enables the exact email rule. Default: true.
	MatchByEmail bool

	// MatchByPhone enables the normalized phone rule. Default: true.
	MatchByPhone bool

	// MatchByName enables the fuzzy name rule. Default: true.
	MatchByName bool
}

// DefaultConfig returns the default detection configuration: all rules
// enabled with the balanced 85 threshold.
func DefaultConfig() Config {
	return Config{
		Threshold:    85,
		MatchByEmail: true,
		MatchByPhone: true,
		MatchByName:  true,
	}
}

// ConfigFromEnv builds a Config from NCDEDUP_* environment variables,
// falling back to defaults for anything unset.
//
// Recognized variables:
//
//	NCDEDUP_THRESHOLD       similarity threshold, 0-100
//	NCDEDUP_MATCH_EMAIL     "true"/"false"
//	NCDEDUP_MATCH_PHONE     "true"/"false"
//	NCDEDUP_MATCH_NAME      "true"/"false"
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("NCDEDUP_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("NCDEDUP_THRESHOLD: invalid integer %q: %w", v, err)
		}
		cfg.Threshold = n
	}
	for _, e := range []struct {
		name string
		dst  *bool
	}{
		{"NCDEDUP_MATCH_EMAIL", &cfg.MatchByEmail},
		{"NCDEDUP_MATCH_PHONE", &cfg.MatchByPhone},
		{"NCDEDUP_MATCH_NAME", &cfg.MatchByName},
	} {
		if v := os.Getenv(e.name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return cfg, fmt.Errorf("%s: invalid boolean %q: %w", e.name, v, err)
			}
			*e.dst = b
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100 (got %d)", c.Threshold)
	}
	if !c.MatchByEmail && !c.MatchByPhone && !c.MatchByName {
		return fmt.Errorf("all matching rules are disabled; nothing to detect")
	}
	return nil
}
