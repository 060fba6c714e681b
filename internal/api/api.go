// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/promptsaver/internal/config"
	"github.com/JaimeStill/promptsaver/pkg/middleware"
	"github.com/JaimeStill/promptsaver/pkg/module"
	"github.com/JaimeStill/promptsaver/pkg/openapi"
)

// NewModule creates the API module with the domain handlers, the OpenAPI
// document at /openapi.json, and CORS. Request logging and session loading
// wrap the whole server, not the module.
func NewModule(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	spec, err := buildSpec(cfg)
	if err != nil {
		return nil, fmt.Errorf("build api spec: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))

	return m, nil
}
