package prompts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptsaver/pkg/storage"
)

const exportTimeFormat = "20060102T150405Z"

// Export describes a snapshot written to blob storage.
type Export struct {
	Key        string    `json:"key"`
	Count      int       `json:"count"`
	ExportedAt time.Time `json:"exported_at"`
}

type snapshot struct {
	Owner      uuid.UUID `json:"owner"`
	ExportedAt time.Time `json:"exported_at"`
	Prompts    []Prompt  `json:"prompts"`
}

// ExportPrefix returns the blob key prefix holding owner's snapshots.
func ExportPrefix(owner uuid.UUID) string {
	return fmt.Sprintf("exports/%s/", owner)
}

// ExportKey returns the blob key of owner's snapshot taken at t.
func ExportKey(owner uuid.UUID, t time.Time) string {
	return ExportPrefix(owner) + t.UTC().Format(exportTimeFormat) + ".json"
}

func (r *repo) Export(ctx context.Context, owner uuid.UUID) (*Export, error) {
	prompts, err := r.All(ctx, &owner)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	body, err := json.MarshalIndent(snapshot{
		Owner:      owner,
		ExportedAt: now,
		Prompts:    prompts,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := ExportKey(owner, now)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(body), "application/json"); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	r.logger.Info("prompts exported", "owner", owner, "key", key, "count", len(prompts))
	return &Export{Key: key, Count: len(prompts), ExportedAt: now}, nil
}

func (r *repo) Exports(ctx context.Context, owner uuid.UUID) ([]storage.BlobMeta, error) {
	blobs, err := r.storage.List(ctx, ExportPrefix(owner), r.maxExports)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return blobs, nil
}

func (r *repo) Download(ctx context.Context, owner uuid.UUID, key string) (*storage.Blob, error) {
	if err := checkExportKey(owner, key); err != nil {
		return nil, err
	}
	return r.storage.Download(ctx, key)
}

func (r *repo) DeleteExport(ctx context.Context, owner uuid.UUID, key string) error {
	if err := checkExportKey(owner, key); err != nil {
		return err
	}
	if err := r.storage.Delete(ctx, key); err != nil {
		return err
	}

	r.logger.Info("export deleted", "owner", owner, "key", key)
	return nil
}

// checkExportKey rejects malformed keys and keys outside owner's prefix.
func checkExportKey(owner uuid.UUID, key string) error {
	if err := storage.ValidateKey(key); err != nil {
		return err
	}
	if !strings.HasPrefix(key, ExportPrefix(owner)) {
		return ErrExportKey
	}
	return nil
}
