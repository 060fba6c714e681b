package config

import (
	"fmt"
	"os"
	"time"
)

const EnvWebFlashDismissAfter = "PROMPTSAVER_WEB_FLASH_DISMISS_AFTER"

// WebConfig holds server-rendered page settings.
type WebConfig struct {
	FlashDismissAfter string `toml:"flash_dismiss_after"`
}

// FlashDismissAfterDuration returns FlashDismissAfter as a time.Duration.
func (c *WebConfig) FlashDismissAfterDuration() time.Duration {
	d, _ := time.ParseDuration(c.FlashDismissAfter)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *WebConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *WebConfig) Merge(overlay *WebConfig) {
	if overlay.FlashDismissAfter != "" {
		c.FlashDismissAfter = overlay.FlashDismissAfter
	}
}

func (c *WebConfig) loadDefaults() {
	if c.FlashDismissAfter == "" {
		c.FlashDismissAfter = "3000ms"
	}
}

func (c *WebConfig) loadEnv() {
	if v := os.Getenv(EnvWebFlashDismissAfter); v != "" {
		c.FlashDismissAfter = v
	}
}

func (c *WebConfig) validate() error {
	d, err := time.ParseDuration(c.FlashDismissAfter)
	if err != nil {
		return fmt.Errorf("invalid flash_dismiss_after: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("flash_dismiss_after must be positive")
	}
	return nil
}
