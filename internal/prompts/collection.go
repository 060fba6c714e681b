package prompts

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/pkg/handlers"
	"github.com/JaimeStill/promptsaver/pkg/routes"
)

// SaveRequest is the body accepted by POST /save_prompt.
type SaveRequest struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// SaveResponse reports whether a prompt was stored.
type SaveResponse struct {
	Success bool `json:"success"`
}

// Entry is a prompt as listed by GET /get_prompts.
type Entry struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// CollectionResponse is the body returned by GET /get_prompts.
type CollectionResponse struct {
	Prompts []Entry `json:"prompts"`
}

// CollectionHandler serves the endpoints used by the browser prompt manager.
// Signed in callers work on their own prompts; anonymous callers share the
// owner-less collection.
type CollectionHandler struct {
	sys         System
	identity    Identity
	logger      *slog.Logger
	maxBodySize int64
}

// NewCollectionHandler creates a CollectionHandler over sys.
func NewCollectionHandler(
	sys System,
	identity Identity,
	logger *slog.Logger,
	maxBodySize int64,
) *CollectionHandler {
	return &CollectionHandler{
		sys:         sys,
		identity:    identity,
		logger:      logger.With("handler", "collection"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the root level route group for the collection endpoints.
func (h *CollectionHandler) Routes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/save_prompt", Handler: h.Save},
			{Method: "GET", Pattern: "/get_prompts", Handler: h.List},
		},
	}
}

// Save stores a prompt. Rejected and failed saves still answer 200 with
// success false; only an unreadable body is a 400.
func (h *CollectionHandler) Save(w http.ResponseWriter, r *http.Request) {
	req, err := handlers.DecodeJSON[SaveRequest](w, r, h.maxBodySize)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd := CreateCommand{Title: req.Title, Text: req.Prompt}
	if _, err := h.sys.Create(r.Context(), h.owner(r), cmd); err != nil {
		if MapHTTPStatus(err) >= http.StatusInternalServerError {
			h.logger.Error("save prompt failed", "error", err)
		} else {
			h.logger.Warn("save prompt rejected", "error", err)
		}
		handlers.RespondJSON(w, http.StatusOK, SaveResponse{Success: false})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SaveResponse{Success: true})
}

// List returns every prompt of the collection in the order they were saved.
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.sys.All(r.Context(), h.owner(r))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	entries := make([]Entry, len(prompts))
	for i, p := range prompts {
		entries[i] = Entry{Title: p.Title, Text: p.Text}
	}

	handlers.RespondJSON(w, http.StatusOK, CollectionResponse{Prompts: entries})
}

func (h *CollectionHandler) owner(r *http.Request) *uuid.UUID {
	if h.identity == nil {
		return nil
	}
	if id, ok := h.identity(r); ok {
		return &id
	}
	return nil
}
