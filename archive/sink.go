// Package archive hands backup documents to an external archival sink.
// The core's obligation ends at producing the bytes: upload retries and
// network failures are the sink operator's problem.
package archive

import (
	"context"
	"os"

	"go.uber.org/zap"
)

// Sink stores a named blob somewhere outside the primary database.
type Sink interface {
	Store(ctx context.Context, name string, data []byte) error
	Description() string
}

// FromEnv picks the configured sink, mirroring the GCS-vs-local switch of
// the upload path: BACKUP_BUCKET selects Google Cloud Storage, otherwise
// BACKUP_DIR selects a local directory. Neither set means no sink, which
// is a valid configuration — backups still run, uploads are skipped.
func FromEnv(ctx context.Context, logger *zap.Logger) (Sink, error) {
	if bucket := os.Getenv("BACKUP_BUCKET"); bucket != "" {
		sink, err := NewGCS(ctx, bucket, os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		if err != nil {
			return nil, err
		}
		logger.Info("archival sink configured", zap.String("sink", sink.Description()))
		return sink, nil
	}
	if dir := os.Getenv("BACKUP_DIR"); dir != "" {
		sink := NewLocal(dir)
		logger.Info("archival sink configured", zap.String("sink", sink.Description()))
		return sink, nil
	}
	logger.Info("no archival sink configured, backups will not be uploaded")
	return nil, nil
}
