package mail

import (
	"fmt"
	"os"
	"strings"
)

// Config holds outbound email settings. An empty APIKey disables delivery.
type Config struct {
	APIKey string `toml:"api_key"`
	From   string `toml:"from"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	APIKey string
	From   string
}

// Enabled reports whether an API key is configured.
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.From != "" {
		c.From = overlay.From
	}
}

func (c *Config) loadDefaults() {
	if c.From == "" {
		c.From = "noreply@promptsaver.com"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.From != "" {
		if v := os.Getenv(env.From); v != "" {
			c.From = v
		}
	}
}

func (c *Config) validate() error {
	if !strings.Contains(c.From, "@") {
		return fmt.Errorf("from must be an email address: %q", c.From)
	}
	return nil
}
