// Package prompts implements the saved prompt domain.
// It provides types, data access, blob exports, and HTTP handlers for the
// REST API and the page endpoints used by the browser client.
package prompts

import (
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxTitleLength is the longest title, in characters, a prompt may carry.
const MaxTitleLength = 100

// Prompt is a saved prompt. UserID is nil for prompts in the shared collection.
type Prompt struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to save a new prompt.
type CreateCommand struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// UpdateCommand carries the replacement title and text for a prompt.
type UpdateCommand struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Identity resolves the user a request acts for.
type Identity func(r *http.Request) (uuid.UUID, bool)

func (c CreateCommand) validate() error {
	return validate(c.Title, c.Text)
}

func (c UpdateCommand) validate() error {
	return validate(c.Title, c.Text)
}

// Only the empty string is rejected; whitespace-only values are stored as given.
func validate(title, text string) error {
	if title == "" || text == "" {
		return ErrInvalid
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d characters", ErrTitleTooLong, utf8.RuneCountInString(title))
	}
	return nil
}
