package api

import (
	"fmt"

	"github.com/JaimeStill/promptsaver/internal/config"
	"github.com/JaimeStill/promptsaver/internal/prompts"
	"github.com/JaimeStill/promptsaver/internal/users"
	"github.com/JaimeStill/promptsaver/pkg/openapi"
)

// buildSpec assembles the API document from the domain path items, served
// relative to the API base path.
func buildSpec(cfg *config.Config) ([]byte, error) {
	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)

	spec.AddSchemas(users.Schemas())
	spec.AddPaths("", users.PathItems())

	spec.AddSchemas(prompts.Schemas())
	spec.AddPaths("", prompts.PathItems())

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
