package users

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for user domain operations.
type System interface {
	Handler(sessions Sessions, maxBodySize int64) *Handler

	// Register creates an account and sends the welcome email. A failed
	// email is logged and does not fail registration.
	Register(ctx context.Context, cmd RegisterCommand) (*User, error)
	// Authenticate returns the user whose username and password match.
	Authenticate(ctx context.Context, username, password string) (*User, error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
}
