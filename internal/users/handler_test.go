package users_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/internal/users"
	"github.com/JaimeStill/promptsaver/pkg/routes"
)

type mockSystem struct {
	registerFn     func(ctx context.Context, cmd users.RegisterCommand) (*users.User, error)
	authenticateFn func(ctx context.Context, username, password string) (*users.User, error)
	findFn         func(ctx context.Context, id uuid.UUID) (*users.User, error)
}

func (m *mockSystem) Handler(sessions users.Sessions, maxBodySize int64) *users.Handler {
	return users.NewHandler(m, sessions, slog.New(slog.NewTextHandler(io.Discard, nil)), maxBodySize)
}

func (m *mockSystem) Register(ctx context.Context, cmd users.RegisterCommand) (*users.User, error) {
	return m.registerFn(ctx, cmd)
}

func (m *mockSystem) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	return m.authenticateFn(ctx, username, password)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return m.findFn(ctx, id)
}

type fakeSessions struct {
	user       uuid.UUID
	signedIn   bool
	remembered bool
	loggedOut  bool
}

func (f *fakeSessions) UserID(*http.Request) (uuid.UUID, bool) {
	return f.user, f.signedIn
}

func (f *fakeSessions) Login(_ http.ResponseWriter, _ *http.Request, id uuid.UUID, remember bool) error {
	f.user, f.signedIn, f.remembered = id, true, remember
	return nil
}

func (f *fakeSessions) Logout(http.ResponseWriter, *http.Request) error {
	f.user, f.signedIn, f.loggedOut = uuid.Nil, false, true
	return nil
}

func sampleUser() users.User {
	return users.User{
		ID:        uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		Username:  "ada",
		Email:     "ada@example.com",
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newMux(sys *mockSystem, sessions users.Sessions) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(sessions, 1<<20).Routes())
	return mux
}

func TestHandlerRegister(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"created", nil, http.StatusCreated},
		{"username taken", users.ErrDuplicateUsername, http.StatusConflict},
		{"email taken", users.ErrDuplicateEmail, http.StatusConflict},
		{"missing fields", users.ErrInvalid, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got users.RegisterCommand
			sys := &mockSystem{
				registerFn: func(_ context.Context, cmd users.RegisterCommand) (*users.User, error) {
					got = cmd
					if tt.err != nil {
						return nil, tt.err
					}
					u := sampleUser()
					return &u, nil
				},
			}

			body := `{"username":"ada","email":"ada@example.com","password":"secret"}`
			rec := httptest.NewRecorder()
			newMux(sys, &fakeSessions{}).ServeHTTP(rec, httptest.NewRequest("POST", "/auth/register", strings.NewReader(body)))

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if got.Username != "ada" || got.Password != "secret" {
				t.Errorf("cmd = %+v", got)
			}
		})
	}
}

func TestHandlerRegisterOmitsPassword(t *testing.T) {
	sys := &mockSystem{
		registerFn: func(context.Context, users.RegisterCommand) (*users.User, error) {
			u := sampleUser()
			return &u, nil
		},
	}

	rec := httptest.NewRecorder()
	newMux(sys, &fakeSessions{}).ServeHTTP(rec, httptest.NewRequest("POST", "/auth/register", strings.NewReader(`{"username":"ada","email":"a@b","password":"pw"}`)))

	if strings.Contains(rec.Body.String(), "pw") || strings.Contains(rec.Body.String(), "password") {
		t.Errorf("response leaks password: %s", rec.Body.String())
	}
}

func TestHandlerLogin(t *testing.T) {
	t.Run("starts session", func(t *testing.T) {
		u := sampleUser()
		sys := &mockSystem{
			authenticateFn: func(_ context.Context, username, password string) (*users.User, error) {
				if username != "ada" || password != "secret" {
					return nil, users.ErrInvalidCredentials
				}
				return &u, nil
			},
		}
		sessions := &fakeSessions{}

		body := `{"username":"ada","password":"secret","remember":true}`
		rec := httptest.NewRecorder()
		newMux(sys, sessions).ServeHTTP(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(body)))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !sessions.signedIn || sessions.user != u.ID {
			t.Errorf("session user = %v (%v), want %v", sessions.user, sessions.signedIn, u.ID)
		}
		if !sessions.remembered {
			t.Error("remember flag not passed")
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		sys := &mockSystem{
			authenticateFn: func(context.Context, string, string) (*users.User, error) {
				return nil, users.ErrInvalidCredentials
			},
		}
		sessions := &fakeSessions{}

		rec := httptest.NewRecorder()
		newMux(sys, sessions).ServeHTTP(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"username":"ada","password":"nope"}`)))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if sessions.signedIn {
			t.Error("session started for bad credentials")
		}
	})
}

func TestHandlerLogout(t *testing.T) {
	sessions := &fakeSessions{user: uuid.New(), signedIn: true}

	rec := httptest.NewRecorder()
	newMux(&mockSystem{}, sessions).ServeHTTP(rec, httptest.NewRequest("POST", "/auth/logout", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if !sessions.loggedOut {
		t.Error("session not ended")
	}
}

func TestHandlerMe(t *testing.T) {
	u := sampleUser()
	sys := &mockSystem{
		findFn: func(_ context.Context, id uuid.UUID) (*users.User, error) {
			if id != u.ID {
				return nil, users.ErrNotFound
			}
			return &u, nil
		},
	}

	t.Run("signed in", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMux(sys, &fakeSessions{user: u.ID, signedIn: true}).ServeHTTP(rec, httptest.NewRequest("GET", "/auth/me", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got users.User
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Username != "ada" {
			t.Errorf("username = %q, want ada", got.Username)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newMux(sys, &fakeSessions{}).ServeHTTP(rec, httptest.NewRequest("GET", "/auth/me", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
