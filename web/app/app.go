// Package app serves the server-rendered Prompt Saver pages and their
// static assets.
package app

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/internal/prompts"
	"github.com/JaimeStill/promptsaver/internal/users"
	"github.com/JaimeStill/promptsaver/pkg/flash"
	"github.com/JaimeStill/promptsaver/pkg/pagination"
	"github.com/JaimeStill/promptsaver/pkg/routes"
	"github.com/JaimeStill/promptsaver/pkg/session"
	"github.com/JaimeStill/promptsaver/pkg/web"
)

//go:embed templates static
var content embed.FS

const layout = "layout"

var (
	homeView      = web.ViewDef{Route: "/", Template: "home.html", Title: "Prompt Saver"}
	registerView  = web.ViewDef{Route: "/register", Template: "register.html", Title: "Register"}
	loginView     = web.ViewDef{Route: "/login", Template: "login.html", Title: "Login"}
	dashboardView = web.ViewDef{Route: "/dashboard", Template: "dashboard.html", Title: "Dashboard"}
	newView       = web.ViewDef{Route: "/prompt/new", Template: "new_prompt.html", Title: "New Prompt"}
	editView      = web.ViewDef{Route: "/prompt/{id}/edit", Template: "edit_prompt.html", Title: "Edit Prompt"}
	notFoundView  = web.ViewDef{Template: "404.html", Title: "Page Not Found"}
	errorView     = web.ViewDef{Template: "500.html", Title: "Something Went Wrong"}
)

var views = []web.ViewDef{
	homeView,
	registerView,
	loginView,
	dashboardView,
	newView,
	editView,
	notFoundView,
	errorView,
}

var funcs = template.FuncMap{
	"add": func(a, b int) int {
		return a + b
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}

// App renders the account and prompt pages.
type App struct {
	templates    *web.TemplateSet
	users        users.System
	prompts      prompts.System
	sessions     *session.Manager
	logger       *slog.Logger
	pagination   pagination.Config
	dismissAfter time.Duration
}

// New parses the embedded templates and creates the page handlers.
func New(
	usersSys users.System,
	promptsSys prompts.System,
	sessions *session.Manager,
	logger *slog.Logger,
	pagination pagination.Config,
	dismissAfter time.Duration,
) (*App, error) {
	ts, err := web.NewTemplateSet(content, "templates/layout.html", "templates/pages", "", funcs, views)
	if err != nil {
		return nil, err
	}

	return &App{
		templates:    ts,
		users:        usersSys,
		prompts:      promptsSys,
		sessions:     sessions,
		logger:       logger.With("handler", "app"),
		pagination:   pagination,
		dismissAfter: dismissAfter,
	}, nil
}

// Routes returns the page routes. Pages behind sign in redirect anonymous
// visitors to the login page.
func (a *App) Routes() routes.Group {
	return routes.Group{
		Routes: append([]routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: a.home},
			{Method: "GET", Pattern: "/register", Handler: a.registerForm},
			{Method: "POST", Pattern: "/register", Handler: a.register},
			{Method: "GET", Pattern: "/login", Handler: a.loginForm},
			{Method: "POST", Pattern: "/login", Handler: a.login},
			{Method: "GET", Pattern: "/logout", Handler: a.protect(a.logout)},
			{Method: "GET", Pattern: "/dashboard", Handler: a.protect(a.dashboard)},
			{Method: "GET", Pattern: "/prompt/new", Handler: a.protect(a.newForm)},
			{Method: "POST", Pattern: "/prompt/new", Handler: a.protect(a.create)},
			{Method: "GET", Pattern: "/prompt/{id}/edit", Handler: a.protect(a.editForm)},
			{Method: "POST", Pattern: "/prompt/{id}/edit", Handler: a.protect(a.update)},
			{Method: "POST", Pattern: "/prompt/{id}/delete", Handler: a.protect(a.delete)},
			{Method: "GET", Pattern: "/static/", Handler: web.DistServer(content, "static", "/static/")},
		}, web.PublicFileRoutes(content, "static", "robots.txt")...),
	}
}

// NotFound renders the 404 page.
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusNotFound, notFoundView, nil)
}

// ServerError renders the 500 page.
func (a *App) ServerError(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusInternalServerError, errorView, nil)
}

func (a *App) protect(h http.HandlerFunc) http.HandlerFunc {
	return a.sessions.RequireUser(h).ServeHTTP
}

func (a *App) render(w http.ResponseWriter, r *http.Request, status int, view web.ViewDef, data any, extra ...flash.Message) {
	vd := web.ViewData{
		Flashes:      append(a.sessions.Flashes(r), extra...),
		DismissAfter: a.dismissAfter.Milliseconds(),
		Data:         data,
	}

	if id, ok := a.sessions.UserID(r); ok {
		if u, err := a.users.Find(r.Context(), id); err == nil {
			vd.User = u
		} else if !errors.Is(err, users.ErrNotFound) {
			a.logger.Error("load current user failed", "error", err)
		}
	}

	if err := a.templates.Render(w, status, layout, view, vd); err != nil {
		a.logger.Error("render failed", "view", view.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	a.logger.Error("request failed", "path", r.URL.Path, "error", err)
	a.ServerError(w, r)
}

func (a *App) flash(w http.ResponseWriter, r *http.Request, text string) {
	if err := a.sessions.AddFlash(w, r, flash.Message{Category: "message", Text: text}); err != nil {
		a.logger.Error("add flash failed", "error", err)
	}
}

func (a *App) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// currentUser returns the signed in user of a protected route.
func (a *App) currentUser(r *http.Request) uuid.UUID {
	id, _ := a.sessions.UserID(r)
	return id
}
