package users

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/promptsaver/pkg/handlers"
	"github.com/JaimeStill/promptsaver/pkg/routes"
)

// Handler provides the JSON account endpoints.
type Handler struct {
	sys         System
	sessions    Sessions
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates a Handler with the given system, session surface, and logger.
func NewHandler(sys System, sessions Sessions, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		sessions:    sessions,
		logger:      logger.With("handler", "users"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for account endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register},
			{Method: "POST", Pattern: "/login", Handler: h.Login},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout},
			{Method: "GET", Pattern: "/me", Handler: h.Me},
		},
	}
}

// Register creates an account from a JSON body.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[RegisterCommand](w, r, h.maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	user, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	cmd, err := handlers.DecodeJSON[LoginCommand](w, r, h.maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	user, err := h.sys.Authenticate(r.Context(), cmd.Username, cmd.Password)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.sessions.Login(w, r, user.ID, cmd.Remember); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// Logout ends the caller's session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed in user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessions.UserID(r)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthenticated)
		return
	}

	user, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}
