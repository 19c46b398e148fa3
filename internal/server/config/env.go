package config

import (
	"errors"

	"github.com/joeshaw/envdecode"
)

// parseEnv overlays DWITTER_* variables. Unset variables keep their current
// value.
func parseEnv(config *Config) error {
	err := envdecode.Decode(config)
	if err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return err
	}
	return nil
}
