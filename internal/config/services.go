package config

import (
	"fmt"
	"os"
	"time"
)

// Gateway backends.
const (
	GatewayMemory   = "memory"
	GatewayPostgres = "postgres"
)

// Lock backends.
const (
	LocksMemory = "memory"
	LocksRedis  = "redis"
)

const (
	// EnvGatewayBackend overrides the persistence backend.
	EnvGatewayBackend = "GATEWAY_BACKEND"

	// EnvLocksBackend overrides the lock backend.
	EnvLocksBackend = "LOCKS_BACKEND"

	// EnvLocksRedisURL overrides the Redis connection URL.
	EnvLocksRedisURL = "LOCKS_REDIS_URL"

	// EnvLocksPrefix overrides the Redis key prefix.
	EnvLocksPrefix = "LOCKS_PREFIX"

	// EnvLocksTTL overrides how long an abandoned Redis lock survives.
	EnvLocksTTL = "LOCKS_TTL"

	// EnvLocksRetryInterval overrides the Redis acquire poll interval.
	EnvLocksRetryInterval = "LOCKS_RETRY_INTERVAL"

	// EnvLocksWaitTimeout overrides how long a request waits for a held lock.
	EnvLocksWaitTimeout = "LOCKS_WAIT_TIMEOUT"
)

// GatewayConfig selects where presentations are stored.
type GatewayConfig struct {
	Backend string `toml:"backend"`
}

// Finalize applies defaults, loads environment overrides, and validates the gateway configuration.
func (c *GatewayConfig) Finalize() error {
	if c.Backend == "" {
		c.Backend = GatewayMemory
	}
	if v := os.Getenv(EnvGatewayBackend); v != "" {
		c.Backend = v
	}

	switch c.Backend {
	case GatewayMemory, GatewayPostgres:
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *GatewayConfig) Merge(overlay *GatewayConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
}

// LocksConfig selects how per-presentation locks are held.
type LocksConfig struct {
	Backend       string `toml:"backend"`
	RedisURL      string `toml:"redis_url"`
	Prefix        string `toml:"prefix"`
	TTL           string `toml:"ttl"`
	RetryInterval string `toml:"retry_interval"`
	WaitTimeout   string `toml:"wait_timeout"`
}

// TTLDuration parses and returns the lock TTL as a time.Duration.
func (c *LocksConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// RetryIntervalDuration parses and returns the retry interval as a time.Duration.
func (c *LocksConfig) RetryIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.RetryInterval)
	return d
}

// WaitTimeoutDuration parses and returns the wait timeout as a time.Duration.
func (c *LocksConfig) WaitTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.WaitTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the lock configuration.
func (c *LocksConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *LocksConfig) Merge(overlay *LocksConfig) {
	if overlay.Backend != "" {
		c.Backend = overlay.Backend
	}
	if overlay.RedisURL != "" {
		c.RedisURL = overlay.RedisURL
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.RetryInterval != "" {
		c.RetryInterval = overlay.RetryInterval
	}
	if overlay.WaitTimeout != "" {
		c.WaitTimeout = overlay.WaitTimeout
	}
}

func (c *LocksConfig) loadDefaults() {
	if c.Backend == "" {
		c.Backend = LocksMemory
	}
	if c.Prefix == "" {
		c.Prefix = "slide-lab:lock:"
	}
	if c.TTL == "" {
		c.TTL = "30s"
	}
	if c.RetryInterval == "" {
		c.RetryInterval = "50ms"
	}
	if c.WaitTimeout == "" {
		c.WaitTimeout = "10s"
	}
}

func (c *LocksConfig) loadEnv() {
	if v := os.Getenv(EnvLocksBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvLocksRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv(EnvLocksPrefix); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv(EnvLocksTTL); v != "" {
		c.TTL = v
	}
	if v := os.Getenv(EnvLocksRetryInterval); v != "" {
		c.RetryInterval = v
	}
	if v := os.Getenv(EnvLocksWaitTimeout); v != "" {
		c.WaitTimeout = v
	}
}

func (c *LocksConfig) validate() error {
	switch c.Backend {
	case LocksMemory:
	case LocksRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	for name, v := range map[string]string{
		"ttl":            c.TTL,
		"retry_interval": c.RetryInterval,
		"wait_timeout":   c.WaitTimeout,
	} {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
