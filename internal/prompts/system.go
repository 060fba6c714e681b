package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/pkg/pagination"
	"github.com/JaimeStill/promptsaver/pkg/storage"
)

// System defines the public contract for prompt domain operations.
// Operations taking an owner act on that user's prompts; a prompt owned by
// someone else yields ErrForbidden.
type System interface {
	Handler(identity Identity, maxBodySize int64) *Handler
	Collection(identity Identity, maxBodySize int64) *CollectionHandler

	List(
		ctx context.Context,
		owner uuid.UUID,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	// All returns every prompt of owner, oldest first. A nil owner selects
	// the shared collection.
	All(ctx context.Context, owner *uuid.UUID) ([]Prompt, error)

	Find(ctx context.Context, owner, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, owner *uuid.UUID, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, owner, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error

	// Export writes a JSON snapshot of owner's prompts to blob storage.
	Export(ctx context.Context, owner uuid.UUID) (*Export, error)
	// Exports lists the snapshots previously written for owner.
	Exports(ctx context.Context, owner uuid.UUID) ([]storage.BlobMeta, error)
	// Download opens one of owner's snapshots. The caller must close the body.
	Download(ctx context.Context, owner uuid.UUID, key string) (*storage.Blob, error)
	DeleteExport(ctx context.Context, owner uuid.UUID, key string) error
}
