package prompts

import (
	"net/url"

	"github.com/JaimeStill/promptsaver/pkg/query"
	"github.com/JaimeStill/promptsaver/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("title", "Title").
	Project("text", "Text").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// id breaks created_at ties so paging and exports are stable
var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

// insertion order, so the legacy list grows at the end
var collectionSort = []query.SortField{
	{Field: "CreatedAt"},
	{Field: "ID"},
}

// Filters contains optional filtering criteria for prompt queries.
// Nil fields are ignored. Title uses case-insensitive contains matching.
type Filters struct {
	Title *string `json:"title,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Title", f.Title)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Text,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
