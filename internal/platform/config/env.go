package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
//
// Fields tagged with `env:"..."` are filled from the process environment and
// fall back to their `envDefault` values. A malformed value (for example a
// non-boolean GWTRACK_LENIENT_STATES) is reported with a "parse env" prefix.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
