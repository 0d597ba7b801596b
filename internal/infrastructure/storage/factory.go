package storage

import (
	"context"

	"github.com/bookkeeping/backend/internal/application/ledger"
	"github.com/bookkeeping/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewAttachmentStore returns the S3 store when storage is enabled, making
// sure its bucket exists, and an in-memory store otherwise
func NewAttachmentStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ledger.AttachmentStore, error) {
	if !cfg.Enabled {
		logger.Warn("Attachment storage disabled, keeping attachments in memory")
		return NewMemoryStore(), nil
	}
	store, err := NewS3Store(ctx, cfg, WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	logger.Info("Attachment storage ready", zap.String("bucket", store.Bucket()))
	return store, nil
}

var (
	_ ledger.AttachmentStore = (*S3Store)(nil)
	_ ledger.AttachmentStore = (*MemoryStore)(nil)
)
