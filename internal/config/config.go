// Package config loads the prompt saver service configuration from TOML
// files, an optional .env file, and environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/promptsaver/pkg/database"
	"github.com/JaimeStill/promptsaver/pkg/mail"
	"github.com/JaimeStill/promptsaver/pkg/session"
	"github.com/JaimeStill/promptsaver/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"
	DotEnvFile           = ".env"

	EnvPromptSaverEnv             = "PROMPTSAVER_ENV"
	EnvPromptSaverShutdownTimeout = "PROMPTSAVER_SHUTDOWN_TIMEOUT"
	EnvPromptSaverVersion         = "PROMPTSAVER_VERSION"
)

var databaseEnv = &database.Env{
	URL:             "DATABASE_URL",
	Host:            "PROMPTSAVER_DB_HOST",
	Port:            "PROMPTSAVER_DB_PORT",
	Name:            "PROMPTSAVER_DB_NAME",
	User:            "PROMPTSAVER_DB_USER",
	Password:        "PROMPTSAVER_DB_PASSWORD",
	SSLMode:         "PROMPTSAVER_DB_SSL_MODE",
	MaxOpenConns:    "PROMPTSAVER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PROMPTSAVER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PROMPTSAVER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PROMPTSAVER_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PROMPTSAVER_STORAGE_CONTAINER_NAME",
	ConnectionString: "PROMPTSAVER_STORAGE_CONNECTION_STRING",
	MaxListSize:      "PROMPTSAVER_STORAGE_MAX_LIST_SIZE",
}

var sessionEnv = &session.Env{
	Secret:        "SECRET_KEY",
	CookieName:    "PROMPTSAVER_SESSION_COOKIE_NAME",
	TTL:           "PROMPTSAVER_SESSION_TTL",
	RememberTTL:   "PROMPTSAVER_SESSION_REMEMBER_TTL",
	Secure:        "PROMPTSAVER_SESSION_SECURE",
	RedisAddr:     "PROMPTSAVER_REDIS_ADDR",
	RedisPassword: "PROMPTSAVER_REDIS_PASSWORD",
	RedisDB:       "PROMPTSAVER_REDIS_DB",
}

var mailEnv = &mail.Env{
	APIKey: "RESEND_API_KEY",
	From:   "PROMPTSAVER_MAIL_FROM",
}

// Config is the root configuration for the prompt saver service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Session         session.Config  `toml:"session"`
	Mail            mail.Config     `toml:"mail"`
	API             APIConfig       `toml:"api"`
	Web             WebConfig       `toml:"web"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PROMPTSAVER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPromptSaverEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the .env file and base config (if present), applies any
// environment overlay, and finalizes all values. Variables already set in the
// process environment win over .env entries.
func Load() (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Session.Merge(&overlay.Session)
	c.Mail.Merge(&overlay.Mail)
	c.API.Merge(&overlay.API)
	c.Web.Merge(&overlay.Web)
}

// Finalize applies defaults, environment overrides, and validation to the
// root config and every sub-config.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Session.Finalize(sessionEnv); err != nil {
		return fmt.Errorf("session: %w", err)
	}
	if err := c.Mail.Finalize(mailEnv); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Web.Finalize(); err != nil {
		return fmt.Errorf("web: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPromptSaverShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPromptSaverVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPromptSaverEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
