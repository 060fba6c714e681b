package api

import (
	"github.com/JaimeStill/promptsaver/internal/prompts"
	"github.com/JaimeStill/promptsaver/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Users   users.System
	Prompts prompts.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Users: users.New(
			runtime.Database.Connection(),
			runtime.Mailer,
			runtime.Logger,
		),
		Prompts: prompts.New(
			runtime.Database.Connection(),
			runtime.Storage,
			runtime.Logger,
			runtime.Pagination,
			runtime.MaxExports,
		),
	}
}
