// Package config handles configuration for the server component: defaults,
// an optional JSON file, DWITTER_* environment variables and command-line
// flags, applied in that order.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the dwitter server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty selects the in-memory store.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - TokenValidityDuration: bearer token lifetime; zero issues tokens without expiry.
//   - RedisAddr / RedisChannelPrefix: Pub/Sub fanout across instances. Empty address disables it.
type Config struct {
	EndpointAddrHTTP      string        `env:"DWITTER_HTTP_ADDR"`
	DatabaseDSN           string        `env:"DWITTER_DATABASE_DSN"`
	SecretKey             string        `env:"DWITTER_SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"DWITTER_TOKEN_VALIDITY,strict"`
	BcryptCost            int           `env:"DWITTER_BCRYPT_COST,strict"`
	RedisAddr             string        `env:"DWITTER_REDIS_ADDR"`
	RedisChannelPrefix    string        `env:"DWITTER_REDIS_CHANNEL_PREFIX"`
	NotifyQueueSize       int           `env:"DWITTER_NOTIFY_QUEUE_SIZE,strict"`
	AllowedOrigins        []string      `env:"DWITTER_ALLOWED_ORIGINS"`
	ShutdownTimeout       time.Duration `env:"DWITTER_SHUTDOWN_TIMEOUT,strict"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 48 * time.Hour
	c.BcryptCost = 12
	c.RedisAddr = ""
	c.RedisChannelPrefix = "dwitter:"
	c.NotifyQueueSize = 256
	c.AllowedOrigins = []string{"*"}
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch {
	case c.EndpointAddrHTTP == "":
		return fmt.Errorf("http address is empty")
	case c.SecretKey == "":
		return fmt.Errorf("secret key is empty")
	case c.NotifyQueueSize <= 0:
		return fmt.Errorf("notify queue size must be positive, got %d", c.NotifyQueueSize)
	}
	return nil
}
