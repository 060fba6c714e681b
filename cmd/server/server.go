package main

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/promptsaver/internal/config"
	"github.com/JaimeStill/promptsaver/internal/infrastructure"
	"github.com/JaimeStill/promptsaver/pkg/middleware"
)

// Server owns the infrastructure, the mounted modules, and the HTTP listener.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	http    *httpServer
}

// NewServer builds the infrastructure and routes without starting anything.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		infra:   infra,
		modules: modules,
		http:    newHTTPServer(&cfg.Server, buildHandler(infra, router), infra.Logger),
	}, nil
}

// Start registers every subsystem with the lifecycle coordinator.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	return s.http.Start(s.infra.Lifecycle)
}

// Run starts the service and blocks until ctx is cancelled, the listener
// fails, or a startup hook fails. Every exit path runs the shutdown hooks.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	if err := s.Start(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(s.http.Serve)

	g.Go(func() error {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			return err
		}
		s.infra.Logger.Info("all subsystems ready")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return s.Shutdown(shutdownTimeout)
	})

	return g.Wait()
}

// Shutdown runs the shutdown hooks within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func buildHandler(infra *infrastructure.Infrastructure, router http.Handler) http.Handler {
	stack := middleware.New()
	stack.Use(middleware.Recover(infra.Logger))
	stack.Use(middleware.Logger(infra.Logger))
	stack.Use(infra.Sessions.Attach)
	return stack.Apply(router)
}
