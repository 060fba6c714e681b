package api

import (
	"github.com/JaimeStill/promptsaver/internal/config"
	"github.com/JaimeStill/promptsaver/internal/infrastructure"
	"github.com/JaimeStill/promptsaver/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination  pagination.Config
	MaxBodySize int64
	MaxExports  int32
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Sessions:  infra.Sessions,
			Mailer:    infra.Mailer,
		},
		Pagination:  cfg.API.Pagination,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
		MaxExports:  cfg.Storage.MaxListSize,
	}
}
