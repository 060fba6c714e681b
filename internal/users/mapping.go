package users

import (
	"github.com/JaimeStill/promptsaver/pkg/query"
	"github.com/JaimeStill/promptsaver/pkg/repository"
)

const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("username", "Username").
	Project("email", "Email").
	Project("created_at", "CreatedAt")

type credentials struct {
	User
	hash []byte
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt)
	return u, err
}

func scanCredentials(s repository.Scanner) (credentials, error) {
	var c credentials
	err := s.Scan(&c.ID, &c.Username, &c.Email, &c.CreatedAt, &c.hash)
	return c, err
}
