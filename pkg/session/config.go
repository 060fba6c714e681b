package session

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds session cookie and Redis store settings.
type Config struct {
	Secret      string      `toml:"secret"`
	CookieName  string      `toml:"cookie_name"`
	TTL         string      `toml:"ttl"`
	RememberTTL string      `toml:"remember_ttl"`
	Secure      bool        `toml:"secure"`
	Redis       RedisConfig `toml:"redis"`
}

// RedisConfig holds Redis connection settings. An empty Addr selects the
// in-memory store.
type RedisConfig struct {
	Addr        string `toml:"addr"`
	Password    string `toml:"password"`
	DB          int    `toml:"db"`
	KeyPrefix   string `toml:"key_prefix"`
	DialTimeout string `toml:"dial_timeout"`
	PoolSize    int    `toml:"pool_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Secret        string
	CookieName    string
	TTL           string
	RememberTTL   string
	Secure        string
	RedisAddr     string
	RedisPassword string
	RedisDB       string
}

// TTLDuration returns TTL as a time.Duration.
func (c *Config) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// RememberTTLDuration returns RememberTTL as a time.Duration.
func (c *Config) RememberTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.RememberTTL)
	return d
}

// DialTimeoutDuration returns DialTimeout as a time.Duration.
func (c *RedisConfig) DialTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.DialTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay. Secure always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.RememberTTL != "" {
		c.RememberTTL = overlay.RememberTTL
	}
	c.Secure = overlay.Secure

	if overlay.Redis.Addr != "" {
		c.Redis.Addr = overlay.Redis.Addr
	}
	if overlay.Redis.Password != "" {
		c.Redis.Password = overlay.Redis.Password
	}
	if overlay.Redis.DB != 0 {
		c.Redis.DB = overlay.Redis.DB
	}
	if overlay.Redis.KeyPrefix != "" {
		c.Redis.KeyPrefix = overlay.Redis.KeyPrefix
	}
	if overlay.Redis.DialTimeout != "" {
		c.Redis.DialTimeout = overlay.Redis.DialTimeout
	}
	if overlay.Redis.PoolSize != 0 {
		c.Redis.PoolSize = overlay.Redis.PoolSize
	}
}

func (c *Config) loadDefaults() {
	if c.CookieName == "" {
		c.CookieName = "promptsaver_session"
	}
	if c.TTL == "" {
		c.TTL = "24h"
	}
	if c.RememberTTL == "" {
		c.RememberTTL = "8760h"
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = "promptsaver:"
	}
	if c.Redis.DialTimeout == "" {
		c.Redis.DialTimeout = "10s"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 10
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.CookieName != "" {
		if v := os.Getenv(env.CookieName); v != "" {
			c.CookieName = v
		}
	}
	if env.TTL != "" {
		if v := os.Getenv(env.TTL); v != "" {
			c.TTL = v
		}
	}
	if env.RememberTTL != "" {
		if v := os.Getenv(env.RememberTTL); v != "" {
			c.RememberTTL = v
		}
	}
	if env.Secure != "" {
		if v := os.Getenv(env.Secure); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Secure = b
			}
		}
	}
	if env.RedisAddr != "" {
		if v := os.Getenv(env.RedisAddr); v != "" {
			c.Redis.Addr = v
		}
	}
	if env.RedisPassword != "" {
		if v := os.Getenv(env.RedisPassword); v != "" {
			c.Redis.Password = v
		}
	}
	if env.RedisDB != "" {
		if v := os.Getenv(env.RedisDB); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Redis.DB = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("secret required")
	}
	if _, err := time.ParseDuration(c.TTL); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.RememberTTL); err != nil {
		return fmt.Errorf("invalid remember_ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.Redis.DialTimeout); err != nil {
		return fmt.Errorf("invalid redis dial_timeout: %w", err)
	}
	return nil
}
