package app

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/internal/prompts"
	"github.com/JaimeStill/promptsaver/internal/users"
	"github.com/JaimeStill/promptsaver/pkg/flash"
	"github.com/JaimeStill/promptsaver/pkg/pagination"
)

// Flash texts shown by the page flows.
const (
	MsgUsernameTaken   = "Username already exists"
	MsgEmailTaken      = "Email already registered"
	MsgRegisterMissing = "Username, email, and password are required"
	MsgRegistered      = "Registration successful! Please login."
	MsgInvalidLogin    = "Invalid username or password"
	MsgPromptRequired  = "Title and content are required"
	MsgTitleTooLong    = "Title must be 100 characters or fewer"
	MsgPromptCreated   = "Prompt created successfully!"
	MsgPromptUpdated   = "Prompt updated successfully!"
	MsgPromptDeleted   = "Prompt deleted successfully!"
	MsgEditForbidden   = "You do not have permission to edit this prompt"
	MsgDeleteForbidden = "You do not have permission to delete this prompt"
)

type dashboardData struct {
	Page *pagination.PageResult[prompts.Prompt]
}

type promptForm struct {
	ID    uuid.UUID
	Title string
	Text  string
}

func (a *App) home(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, homeView, nil)
}

func (a *App) registerForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.sessions.UserID(r); ok {
		a.redirect(w, r, "/dashboard")
		return
	}
	a.render(w, r, http.StatusOK, registerView, nil)
}

func (a *App) register(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.sessions.UserID(r); ok {
		a.redirect(w, r, "/dashboard")
		return
	}

	cmd := users.RegisterCommand{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	_, err := a.users.Register(r.Context(), cmd)
	switch {
	case err == nil:
		a.flash(w, r, MsgRegistered)
		a.redirect(w, r, "/login")
	case errors.Is(err, users.ErrDuplicateUsername):
		a.flash(w, r, MsgUsernameTaken)
		a.redirect(w, r, "/register")
	case errors.Is(err, users.ErrDuplicateEmail):
		a.flash(w, r, MsgEmailTaken)
		a.redirect(w, r, "/register")
	case errors.Is(err, users.ErrInvalid):
		a.flash(w, r, MsgRegisterMissing)
		a.redirect(w, r, "/register")
	default:
		a.fail(w, r, err)
	}
}

func (a *App) loginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.sessions.UserID(r); ok {
		a.redirect(w, r, "/dashboard")
		return
	}
	a.render(w, r, http.StatusOK, loginView, nil)
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.sessions.UserID(r); ok {
		a.redirect(w, r, "/dashboard")
		return
	}

	user, err := a.users.Authenticate(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, users.ErrInvalidCredentials) {
			a.fail(w, r, err)
			return
		}
		a.render(w, r, http.StatusOK, loginView, nil, flash.Message{Category: "message", Text: MsgInvalidLogin})
		return
	}

	remember := r.PostFormValue("remember") != ""
	if err := a.sessions.Login(w, r, user.ID, remember); err != nil {
		a.fail(w, r, err)
		return
	}

	a.redirect(w, r, nextPage(r.URL.Query().Get("next")))
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Logout(w, r); err != nil {
		a.fail(w, r, err)
		return
	}
	a.redirect(w, r, "/")
}

func (a *App) dashboard(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), a.pagination)

	result, err := a.prompts.List(r.Context(), a.currentUser(r), page, prompts.Filters{})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	a.render(w, r, http.StatusOK, dashboardView, dashboardData{Page: result})
}

func (a *App) newForm(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, newView, promptForm{})
}

func (a *App) create(w http.ResponseWriter, r *http.Request) {
	owner := a.currentUser(r)
	cmd := prompts.CreateCommand{
		Title: r.PostFormValue("title"),
		Text:  r.PostFormValue("content"),
	}

	if _, err := a.prompts.Create(r.Context(), &owner, cmd); err != nil {
		if msg, ok := validationMessage(err); ok {
			a.flash(w, r, msg)
			a.redirect(w, r, "/prompt/new")
			return
		}
		a.fail(w, r, err)
		return
	}

	a.flash(w, r, MsgPromptCreated)
	a.redirect(w, r, "/dashboard")
}

func (a *App) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promptID(w, r)
	if !ok {
		return
	}

	p, err := a.prompts.Find(r.Context(), a.currentUser(r), id)
	if err != nil {
		a.promptError(w, r, err, MsgEditForbidden)
		return
	}

	a.render(w, r, http.StatusOK, editView, promptForm{ID: p.ID, Title: p.Title, Text: p.Text})
}

func (a *App) update(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promptID(w, r)
	if !ok {
		return
	}

	cmd := prompts.UpdateCommand{
		Title: r.PostFormValue("title"),
		Text:  r.PostFormValue("content"),
	}

	if _, err := a.prompts.Update(r.Context(), a.currentUser(r), id, cmd); err != nil {
		if msg, ok := validationMessage(err); ok {
			a.flash(w, r, msg)
			a.redirect(w, r, "/prompt/"+id.String()+"/edit")
			return
		}
		a.promptError(w, r, err, MsgEditForbidden)
		return
	}

	a.flash(w, r, MsgPromptUpdated)
	a.redirect(w, r, "/dashboard")
}

func (a *App) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.promptID(w, r)
	if !ok {
		return
	}

	if err := a.prompts.Delete(r.Context(), a.currentUser(r), id); err != nil {
		a.promptError(w, r, err, MsgDeleteForbidden)
		return
	}

	a.flash(w, r, MsgPromptDeleted)
	a.redirect(w, r, "/dashboard")
}

func (a *App) promptID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		a.NotFound(w, r)
		return uuid.Nil, false
	}
	return id, true
}

func (a *App) promptError(w http.ResponseWriter, r *http.Request, err error, forbidden string) {
	switch {
	case errors.Is(err, prompts.ErrNotFound):
		a.NotFound(w, r)
	case errors.Is(err, prompts.ErrForbidden):
		a.flash(w, r, forbidden)
		a.redirect(w, r, "/dashboard")
	default:
		a.fail(w, r, err)
	}
}

func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, prompts.ErrInvalid):
		return MsgPromptRequired, true
	case errors.Is(err, prompts.ErrTitleTooLong):
		return MsgTitleTooLong, true
	}
	return "", false
}

// nextPage only follows local paths so the login form cannot redirect off site.
// Browsers drop tab, CR, and LF from a Location, so control characters are
// rejected before the prefix checks.
func nextPage(next string) string {
	const fallback = "/dashboard"

	if next == "" || strings.ContainsFunc(next, func(r rune) bool { return r <= 0x20 || r == 0x7f }) {
		return fallback
	}
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	return next
}
