package api

import (
	"net/http"

	"github.com/JaimeStill/promptsaver/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Users.Handler(runtime.Sessions, runtime.MaxBodySize).Routes(),
		domain.Prompts.Handler(runtime.Sessions.UserID, runtime.MaxBodySize).Routes(),
	)
}
