// Package users implements account registration and sign in.
package users

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password hash never leaves the package.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterCommand carries the data needed to create an account.
type RegisterCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginCommand carries sign in credentials.
type LoginCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// Sessions is the session surface the handlers sign users in and out with.
type Sessions interface {
	UserID(r *http.Request) (uuid.UUID, bool)
	Login(w http.ResponseWriter, r *http.Request, userID uuid.UUID, remember bool) error
	Logout(w http.ResponseWriter, r *http.Request) error
}

func (c RegisterCommand) validate() error {
	if c.Username == "" || c.Email == "" || c.Password == "" {
		return ErrInvalid
	}
	return nil
}
