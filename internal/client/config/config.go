// Package config loads settings for the dwitter CLI.
//
// Sources, later ones winning: built-in defaults, an optional JSON file,
// then DWITTER_* environment variables. Command-line flags are applied by
// the cli package on top of the result.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

type Config struct {
	ServerURL string        `env:"DWITTER_SERVER_URL"`
	Timeout   time.Duration `env:"DWITTER_CLIENT_TIMEOUT,strict"`
	// TokenFile overrides where the session token is cached.
	TokenFile string `env:"DWITTER_TOKEN_FILE"`
}

func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.Timeout = 10 * time.Second
}

// LoadConfig applies defaults, the JSON file at path (skipped when path is
// empty) and the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, path); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("client timeout must be positive")
	}
	return cfg, nil
}
