package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/tmarsh/gantry/pkg/observability"
	"github.com/tmarsh/gantry/pkg/plan"
)

// FileStore implements a file-based draft store for CLI usage.
// The draft lives as one pretty-printed JSON file in a data directory.
type FileStore struct {
	path string
}

// NewFileStore creates a file-based draft store under the given
// directory. The directory will be created if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, "draft.json")}, nil
}

// Load retrieves the draft document.
func (s *FileStore) Load(ctx context.Context) (*plan.Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		observability.Store().OnLoad(ctx, "draft", false)
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	observability.Store().OnLoad(ctx, "draft", true)
	return plan.Decode(data)
}

// Save overwrites the draft document. The write goes through a temp
// file and rename so a crash never leaves a truncated draft behind.
func (s *FileStore) Save(ctx context.Context, doc *plan.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	observability.Store().OnSave(ctx, "draft", len(data))
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

// Ensure FileStore implements DraftStore.
var _ DraftStore = (*FileStore)(nil)
