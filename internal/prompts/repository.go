package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/pkg/pagination"
	"github.com/JaimeStill/promptsaver/pkg/query"
	"github.com/JaimeStill/promptsaver/pkg/repository"
	"github.com/JaimeStill/promptsaver/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
	maxExports int32
}

// New creates a prompt repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxExports int32,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "prompts"),
		pagination: pagination,
		maxExports: maxExports,
	}
}

func (r *repo) Handler(identity Identity, maxBodySize int64) *Handler {
	return NewHandler(r, identity, r.logger, r.pagination, maxBodySize)
}

func (r *repo) Collection(identity Identity, maxBodySize int64) *CollectionHandler {
	return NewCollectionHandler(r, identity, r.logger, maxBodySize)
}

func (r *repo) List(
	ctx context.Context,
	owner uuid.UUID,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Prompt], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort...).
		WhereEquals("UserID", owner).
		WhereSearch(page.Search, "Title", "Text")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count prompts: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	prompts, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	result := pagination.NewPageResult(prompts, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) All(ctx context.Context, owner *uuid.UUID) ([]Prompt, error) {
	q, args := query.
		NewBuilder(projection, collectionSort...).
		WhereNullable("UserID", owner).
		Build()

	prompts, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	return prompts, nil
}

func (r *repo) Find(ctx context.Context, owner, id uuid.UUID) (*Prompt, error) {
	p, err := r.find(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	if !owns(p, owner) {
		return nil, ErrForbidden
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, owner *uuid.UUID, cmd CreateCommand) (*Prompt, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO public.prompts (user_id, title, text)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, text, created_at, updated_at`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		return repository.QueryOne(ctx, tx, q, []any{owner, cmd.Title, cmd.Text}, scanPrompt)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, err)
	}

	r.logger.Info("prompt created", "id", p.ID, "title", p.Title)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, owner, id uuid.UUID, cmd UpdateCommand) (*Prompt, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE public.prompts
		SET title = $1, text = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, user_id, title, text, created_at, updated_at`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Prompt, error) {
		current, err := r.find(ctx, tx, id)
		if err != nil {
			return Prompt{}, err
		}
		if !owns(current, owner) {
			return Prompt{}, ErrForbidden
		}
		return repository.QueryOne(ctx, tx, q, []any{cmd.Title, cmd.Text, id}, scanPrompt)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, err)
	}

	r.logger.Info("prompt updated", "id", p.ID, "title", p.Title)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, owner, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		current, err := r.find(ctx, tx, id)
		if err != nil {
			return struct{}{}, err
		}
		if !owns(current, owner) {
			return struct{}{}, ErrForbidden
		}
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM public.prompts WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, err)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (Prompt, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, q, stmt, args, scanPrompt)
	if err != nil {
		return Prompt{}, repository.MapError(err, ErrNotFound, err)
	}
	return p, nil
}

func owns(p Prompt, owner uuid.UUID) bool {
	return p.UserID != nil && *p.UserID == owner
}
