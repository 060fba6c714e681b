// Package session provides cookie-identified, server-stored sessions with
// login state and one-shot flash messages.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/pkg/flash"
	"github.com/JaimeStill/promptsaver/pkg/handlers"
	"github.com/JaimeStill/promptsaver/pkg/lifecycle"
)

// LoginMessage is flashed when a page requires a logged in user.
const LoginMessage = "Please log in to access this page."

type ctxKey struct{}

type state struct {
	id   string
	data Data
}

// Manager issues session cookies and reads and writes session state.
type Manager struct {
	store  Store
	secret []byte
	cfg    *Config
	logger *slog.Logger
}

// New creates a session manager over store.
func New(cfg *Config, store Store, logger *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(cfg.Secret),
		cfg:    cfg,
		logger: logger.With("system", "session"),
	}
}

// Start registers a startup hook that pings the store and a shutdown hook that closes it.
func (m *Manager) Start(lc *lifecycle.Coordinator) error {
	m.logger.Info("starting session store")

	lc.OnStartup(func() error {
		if err := m.store.Ping(lc.Context()); err != nil {
			m.logger.Error("session store ping failed", "error", err)
			return fmt.Errorf("session store: %w", err)
		}
		m.logger.Info("session store ready")
		return nil
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := m.store.Close(); err != nil {
			m.logger.Error("session store close failed", "error", err)
			return
		}
		m.logger.Info("session store closed")
	})

	return nil
}

// Attach loads the request's session once and makes it available to later handlers.
func (m *Manager) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := m.load(r)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, st)))
	})
}

// UserID returns the logged in user of the request, if any.
func (m *Manager) UserID(r *http.Request) (uuid.UUID, bool) {
	st := m.current(r)
	if st.data.UserID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(st.data.UserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Login starts a new authenticated session for userID, replacing any existing one.
// A remembered session outlives the browser session.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, userID uuid.UUID, remember bool) error {
	st := m.current(r)
	if st.id != "" {
		if err := m.store.Delete(r.Context(), st.id); err != nil {
			m.logger.Warn("discard previous session failed", "error", err)
		}
	}

	data := Data{
		UserID:    userID.String(),
		Remember:  remember,
		CreatedAt: time.Now().UTC(),
	}
	id := uuid.NewString()

	if err := m.store.Save(r.Context(), id, data, m.ttl(data)); err != nil {
		return err
	}

	st.id, st.data = id, data
	m.setCookie(w, id, remember)
	return nil
}

// Logout ends the request's session and expires its cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	st := m.current(r)
	if st.id != "" {
		if err := m.store.Delete(r.Context(), st.id); err != nil {
			return err
		}
	}

	st.id, st.data = "", Data{}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// AddFlash queues a message for the next page rendered for this session.
// Anonymous visitors get a session so the message survives the redirect.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, msg flash.Message) error {
	st, err := m.ensure(w, r)
	if err != nil {
		return err
	}
	return m.store.PushFlash(r.Context(), st.id, msg, m.ttl(st.data))
}

// Flashes removes and returns the queued messages. Errors are logged and
// yield no messages.
func (m *Manager) Flashes(r *http.Request) []flash.Message {
	st := m.current(r)
	if st.id == "" {
		return nil
	}

	msgs, err := m.store.PopFlashes(r.Context(), st.id)
	if err != nil {
		m.logger.Error("read flashes failed", "error", err)
		return nil
	}
	return msgs
}

// RequireUser redirects anonymous page requests to /login with a next parameter.
func (m *Manager) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.UserID(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if err := m.AddFlash(w, r, flash.Message{Category: "message", Text: LoginMessage}); err != nil {
			m.logger.Error("flash login message failed", "error", err)
		}
		http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
	})
}

// RequireUserAPI rejects anonymous API requests with 401.
func (m *Manager) RequireUserAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.UserID(r); !ok {
			handlers.RespondError(w, m.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Manager) current(r *http.Request) *state {
	if st, ok := r.Context().Value(ctxKey{}).(*state); ok {
		return st
	}
	return m.load(r)
}

func (m *Manager) load(r *http.Request) *state {
	c, err := r.Cookie(m.cfg.CookieName)
	if err != nil {
		return &state{}
	}

	id, ok := verify(m.secret, c.Value)
	if !ok {
		return &state{}
	}

	data, err := m.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			m.logger.Error("load session failed", "error", err)
		}
		return &state{}
	}

	return &state{id: id, data: data}
}

func (m *Manager) ensure(w http.ResponseWriter, r *http.Request) (*state, error) {
	st := m.current(r)
	if st.id != "" {
		return st, nil
	}

	data := Data{CreatedAt: time.Now().UTC()}
	id := uuid.NewString()
	if err := m.store.Save(r.Context(), id, data, m.ttl(data)); err != nil {
		return nil, err
	}

	st.id, st.data = id, data
	m.setCookie(w, id, false)
	return st, nil
}

func (m *Manager) ttl(data Data) time.Duration {
	if data.Remember {
		return m.cfg.RememberTTLDuration()
	}
	return m.cfg.TTLDuration()
}

func (m *Manager) setCookie(w http.ResponseWriter, id string, remember bool) {
	c := &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    sign(m.secret, id),
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		c.MaxAge = int(m.cfg.RememberTTLDuration().Seconds())
	}
	http.SetCookie(w, c)
}
