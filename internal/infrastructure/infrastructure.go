// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, sessions, mail) that
// domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/promptsaver/internal/config"
	"github.com/JaimeStill/promptsaver/pkg/database"
	"github.com/JaimeStill/promptsaver/pkg/lifecycle"
	"github.com/JaimeStill/promptsaver/pkg/mail"
	"github.com/JaimeStill/promptsaver/pkg/session"
	"github.com/JaimeStill/promptsaver/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Sessions  *session.Manager
	Mailer    mail.Sender
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Sessions:  session.New(&cfg.Session, newSessionStore(&cfg.Session.Redis, logger), logger),
		Mailer:    mail.New(&cfg.Mail, logger),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Sessions.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("session start failed: %w", err)
	}
	return nil
}

func newSessionStore(cfg *session.RedisConfig, logger *slog.Logger) session.Store {
	if cfg.Addr == "" {
		logger.Warn("no redis address configured, sessions are kept in memory")
		return session.NewMemoryStore()
	}
	return session.NewRedisStore(cfg)
}
