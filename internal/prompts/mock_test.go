package prompts_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/internal/prompts"
	"github.com/JaimeStill/promptsaver/pkg/pagination"
	"github.com/JaimeStill/promptsaver/pkg/routes"
	"github.com/JaimeStill/promptsaver/pkg/storage"
)

var (
	ownerID        = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	testPagination = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
)

type mockSystem struct {
	listFn     func(ctx context.Context, owner uuid.UUID, page pagination.PageRequest, filters prompts.Filters) (*pagination.PageResult[prompts.Prompt], error)
	allFn      func(ctx context.Context, owner *uuid.UUID) ([]prompts.Prompt, error)
	findFn     func(ctx context.Context, owner, id uuid.UUID) (*prompts.Prompt, error)
	createFn   func(ctx context.Context, owner *uuid.UUID, cmd prompts.CreateCommand) (*prompts.Prompt, error)
	updateFn   func(ctx context.Context, owner, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error)
	deleteFn   func(ctx context.Context, owner, id uuid.UUID) error
	exportFn   func(ctx context.Context, owner uuid.UUID) (*prompts.Export, error)
	exportsFn  func(ctx context.Context, owner uuid.UUID) ([]storage.BlobMeta, error)
	downloadFn func(ctx context.Context, owner uuid.UUID, key string) (*storage.Blob, error)
	removeFn   func(ctx context.Context, owner uuid.UUID, key string) error
}

func (m *mockSystem) Handler(identity prompts.Identity, maxBodySize int64) *prompts.Handler {
	return prompts.NewHandler(m, identity, discard(), testPagination, maxBodySize)
}

func (m *mockSystem) Collection(identity prompts.Identity, maxBodySize int64) *prompts.CollectionHandler {
	return prompts.NewCollectionHandler(m, identity, discard(), maxBodySize)
}

func (m *mockSystem) List(ctx context.Context, owner uuid.UUID, page pagination.PageRequest, filters prompts.Filters) (*pagination.PageResult[prompts.Prompt], error) {
	return m.listFn(ctx, owner, page, filters)
}

func (m *mockSystem) All(ctx context.Context, owner *uuid.UUID) ([]prompts.Prompt, error) {
	return m.allFn(ctx, owner)
}

func (m *mockSystem) Find(ctx context.Context, owner, id uuid.UUID) (*prompts.Prompt, error) {
	return m.findFn(ctx, owner, id)
}

func (m *mockSystem) Create(ctx context.Context, owner *uuid.UUID, cmd prompts.CreateCommand) (*prompts.Prompt, error) {
	return m.createFn(ctx, owner, cmd)
}

func (m *mockSystem) Update(ctx context.Context, owner, id uuid.UUID, cmd prompts.UpdateCommand) (*prompts.Prompt, error) {
	return m.updateFn(ctx, owner, id, cmd)
}

func (m *mockSystem) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return m.deleteFn(ctx, owner, id)
}

func (m *mockSystem) Export(ctx context.Context, owner uuid.UUID) (*prompts.Export, error) {
	return m.exportFn(ctx, owner)
}

func (m *mockSystem) Exports(ctx context.Context, owner uuid.UUID) ([]storage.BlobMeta, error) {
	return m.exportsFn(ctx, owner)
}

func (m *mockSystem) Download(ctx context.Context, owner uuid.UUID, key string) (*storage.Blob, error) {
	return m.downloadFn(ctx, owner, key)
}

func (m *mockSystem) DeleteExport(ctx context.Context, owner uuid.UUID, key string) error {
	return m.removeFn(ctx, owner, key)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func signedIn(*http.Request) (uuid.UUID, bool) {
	return ownerID, true
}

func anonymous(*http.Request) (uuid.UUID, bool) {
	return uuid.Nil, false
}

func setupMux(group routes.Group) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, group)
	return mux
}

func samplePrompt() prompts.Prompt {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	owner := ownerID
	return prompts.Prompt{
		ID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		UserID:    &owner,
		Title:     "Summarize",
		Text:      "Summarize the following text in three bullet points.",
		CreatedAt: created,
		UpdatedAt: created,
	}
}
