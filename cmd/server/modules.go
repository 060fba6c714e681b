package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/promptsaver/internal/api"
	"github.com/JaimeStill/promptsaver/internal/config"
	"github.com/JaimeStill/promptsaver/internal/infrastructure"
	"github.com/JaimeStill/promptsaver/internal/prompts"
	"github.com/JaimeStill/promptsaver/pkg/module"
	"github.com/JaimeStill/promptsaver/web/app"
)

// Modules holds the mounted API module and the root level page handlers.
type Modules struct {
	API        *module.Module
	App        *app.App
	Collection *prompts.CollectionHandler
}

// NewModules creates the domain systems once and shares them between the
// API, the pages, and the browser collection endpoints.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	runtime := api.NewRuntime(cfg, infra)
	domain := api.NewDomain(runtime)

	pages, err := app.New(
		domain.Users,
		domain.Prompts,
		infra.Sessions,
		infra.Logger,
		cfg.API.Pagination,
		cfg.Web.FlashDismissAfterDuration(),
	)
	if err != nil {
		return nil, err
	}

	apiModule, err := api.NewModule(cfg, runtime, domain)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:        apiModule,
		App:        pages,
		Collection: domain.Prompts.Collection(infra.Sessions.UserID, runtime.MaxBodySize),
	}, nil
}

// Mount registers the modules and page routes on the router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Register(m.Collection.Routes(), m.App.Routes())
	router.SetFallback(http.HandlerFunc(m.App.NotFound))
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
