package generator

import (
	"fmt"
	"os"
	"strconv"
	"time"

	units "github.com/docker/go-units"
)

// Supported providers.
const (
	ProviderAgents = "agents"
	ProviderOpenAI = "openai"
)

// Config contains generative service configuration.
type Config struct {
	Provider        string `toml:"provider"`
	Timeout         string `toml:"timeout"`
	MaxResponseSize string `toml:"max_response_size"`
	AgentConfig     string `toml:"agent_config"`
	BaseURL         string `toml:"base_url"`
	Model           string `toml:"model"`
	APIKey          string `toml:"api_key"`
	MaxConcurrency  int    `toml:"max_concurrency"`
}

// Env maps environment variable names for generator configuration.
type Env struct {
	Provider        string
	Timeout         string
	MaxResponseSize string
	AgentConfig     string
	BaseURL         string
	Model           string
	APIKey          string
	MaxConcurrency  string
}

// TimeoutDuration parses and returns the per-call timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MaxResponseBytes parses MaxResponseSize ("256KB", "1MiB") into bytes.
func (c *Config) MaxResponseBytes() (int64, error) {
	n, err := units.RAMInBytes(c.MaxResponseSize)
	if err != nil {
		return 0, fmt.Errorf("invalid max_response_size: %w", err)
	}
	return n, nil
}

// Finalize applies defaults, loads environment overrides, and validates the generator configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero values from overlay onto the receiver.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResponseSize != "" {
		c.MaxResponseSize = overlay.MaxResponseSize
	}
	if overlay.AgentConfig != "" {
		c.AgentConfig = overlay.AgentConfig
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.MaxConcurrency != 0 {
		c.MaxConcurrency = overlay.MaxConcurrency
	}
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAgents
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
	if c.MaxResponseSize == "" {
		c.MaxResponseSize = "256KB"
	}
	if c.MaxConcurrency == 0 {
		c.MaxConcurrency = 4
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Provider != "" {
		if v := os.Getenv(env.Provider); v != "" {
			c.Provider = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxResponseSize != "" {
		if v := os.Getenv(env.MaxResponseSize); v != "" {
			c.MaxResponseSize = v
		}
	}
	if env.AgentConfig != "" {
		if v := os.Getenv(env.AgentConfig); v != "" {
			c.AgentConfig = v
		}
	}
	if env.BaseURL != "" {
		if v := os.Getenv(env.BaseURL); v != "" {
			c.BaseURL = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.MaxConcurrency != "" {
		if v := os.Getenv(env.MaxConcurrency); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxConcurrency = n
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Provider {
	case ProviderAgents:
	case ProviderOpenAI:
		if c.Model == "" {
			return fmt.Errorf("model required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("invalid provider %q (must be %s or %s)", c.Provider, ProviderAgents, ProviderOpenAI)
	}
	if d, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if _, err := c.MaxResponseBytes(); err != nil {
		return err
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max_concurrency must be positive")
	}
	return nil
}
