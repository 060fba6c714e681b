package users

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"invalid", ErrInvalid, http.StatusBadRequest},
		{"duplicate username", ErrDuplicateUsername, http.StatusConflict},
		{"duplicate email", ErrDuplicateEmail, http.StatusConflict},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"wrapped invalid", fmt.Errorf("hash: %w", ErrInvalid), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMapInsertError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"username taken", &pgconn.PgError{Code: "23505", ConstraintName: usernameConstraint}, ErrDuplicateUsername},
		{"email taken", &pgconn.PgError{Code: "23505", ConstraintName: emailConstraint}, ErrDuplicateEmail},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505", ConstraintName: emailConstraint}), ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapInsertError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("mapInsertError = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		cause := &pgconn.PgError{Code: "23502", ColumnName: "email"}
		got := mapInsertError(cause)
		if errors.Is(got, ErrDuplicateUsername) || errors.Is(got, ErrDuplicateEmail) {
			t.Fatalf("mapInsertError = %v, want passthrough", got)
		}
		var pgErr *pgconn.PgError
		if !errors.As(got, &pgErr) {
			t.Errorf("cause lost: %v", got)
		}
	})
}

func TestRegisterCommandValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  RegisterCommand
		ok   bool
	}{
		{"complete", RegisterCommand{Username: "ada", Email: "ada@example.com", Password: "secret"}, true},
		{"missing username", RegisterCommand{Email: "ada@example.com", Password: "secret"}, false},
		{"missing email", RegisterCommand{Username: "ada", Password: "secret"}, false},
		{"missing password", RegisterCommand{Username: "ada", Email: "ada@example.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.validate()
			if tt.ok && err != nil {
				t.Errorf("validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("validate = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name     string
		hash     []byte
		password string
		want     error
	}{
		{"match", hash, "correct horse", nil},
		{"mismatch", hash, "wrong", ErrInvalidCredentials},
		{"unknown user", nil, "correct horse", ErrInvalidCredentials},
		{"unknown user empty password", nil, "", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkPassword(tt.hash, tt.password); !errors.Is(err, tt.want) {
				t.Errorf("checkPassword() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDummyHashCostsAsMuchAsStoredHashes(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash())
	if err != nil {
		t.Fatalf("dummy hash is not a bcrypt hash: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("dummy hash cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}
