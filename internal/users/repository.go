package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/promptsaver/pkg/mail"
	"github.com/JaimeStill/promptsaver/pkg/query"
	"github.com/JaimeStill/promptsaver/pkg/repository"
)

type repo struct {
	db     *sql.DB
	mailer mail.Sender
	logger *slog.Logger
	cost   int
}

// New creates a user repository implementing the System interface.
func New(db *sql.DB, mailer mail.Sender, logger *slog.Logger) System {
	return &repo{
		db:     db,
		mailer: mailer,
		logger: logger.With("system", "users"),
		cost:   bcrypt.DefaultCost,
	}
}

func (r *repo) Handler(sessions Sessions, maxBodySize int64) *Handler {
	return NewHandler(r, sessions, r.logger, maxBodySize)
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), r.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `
		INSERT INTO public.users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, created_at`

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, []any{cmd.Username, cmd.Email, string(hash)}, scanUser)
	})
	if err != nil {
		return nil, mapInsertError(err)
	}

	r.logger.Info("user registered", "id", u.ID, "username", u.Username)

	if err := r.mailer.Send(ctx, mail.WelcomeEmail(u.Email, u.Username)); err != nil {
		r.logger.Error("welcome email failed", "id", u.ID, "error", err)
	}

	return &u, nil
}

func (r *repo) Authenticate(ctx context.Context, username, password string) (*User, error) {
	q := fmt.Sprintf(
		"SELECT %s, u.password_hash FROM %s WHERE u.username = $1",
		projection.Columns(),
		projection.From(),
	)

	c, err := repository.QueryOne(ctx, r.db, q, []any{username}, scanCredentials)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, checkPassword(nil, password)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if err := checkPassword(c.hash, password); err != nil {
		return nil, err
	}

	return &c.User, nil
}

var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("promptsaver-unknown-user"), bcrypt.DefaultCost)
	return h
})

// checkPassword compares password against hash. A nil hash stands for an
// unknown username and is compared against a dummy hash so both paths cost
// one bcrypt comparison.
func checkPassword(hash []byte, password string) error {
	if hash == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, err)
	}
	return &u, nil
}

func mapInsertError(err error) error {
	constraint, ok := repository.UniqueViolation(err)
	if !ok {
		return fmt.Errorf("insert user: %w", err)
	}
	switch constraint {
	case usernameConstraint:
		return ErrDuplicateUsername
	case emailConstraint:
		return ErrDuplicateEmail
	}
	return fmt.Errorf("insert user: %w", err)
}
