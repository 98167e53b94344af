package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local writes backup documents into a directory. The development stand-in
// for the cloud bucket.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Store(ctx context.Context, name string, data []byte) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup %s: %w", path, err)
	}
	return nil
}

func (l *Local) Description() string {
	return fmt.Sprintf("dir://%s", l.dir)
}
