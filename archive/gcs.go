package archive

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS uploads backup documents to a Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
}

// NewGCS builds a sink for the given bucket. credsPath may be empty, in
// which case application default credentials are used (Cloud Run, GCE).
func NewGCS(ctx context.Context, bucket, credsPath string) (*GCS, error) {
	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Store(ctx context.Context, name string, data []byte) error {
	obj := g.client.Bucket(g.bucket).Object(name)
	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "no-cache, no-store, must-revalidate"

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GCS object %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer for %s: %w", name, err)
	}
	return nil
}

func (g *GCS) Description() string {
	return fmt.Sprintf("gs://%s", g.bucket)
}
