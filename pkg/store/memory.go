package store

import (
	"context"
	"sync"
	"time"

	"github.com/tmarsh/gantry/pkg/plan"
)

// MemoryStore keeps the draft and version history in process memory.
// Useful for testing and for serving without a database.
type MemoryStore struct {
	mu       sync.Mutex
	draft    *plan.Document
	versions []plan.Version
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load retrieves the draft document.
func (s *MemoryStore) Load(ctx context.Context) (*plan.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		return nil, ErrNotFound
	}
	return s.draft.Clone(), nil
}

// Save overwrites the draft document.
func (s *MemoryStore) Save(ctx context.Context, doc *plan.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = doc.Clone()
	return nil
}

// SaveVersion appends a snapshot under the given label.
func (s *MemoryStore) SaveVersion(ctx context.Context, label string, doc *plan.Document) (plan.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := doc.Clone()
	v := plan.Version{
		ID:        plan.NewID("ver"),
		Label:     label,
		CreatedAt: time.Now().UTC(),
		Groups:    c.Groups,
		Tasks:     c.Tasks,
	}
	s.versions = append(s.versions, v)
	return v, nil
}

// List returns all versions, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]plan.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]plan.Version, 0, len(s.versions))
	for i := len(s.versions) - 1; i >= 0; i-- {
		out = append(out, s.versions[i])
	}
	return out, nil
}

// Get retrieves one version by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (plan.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions {
		if v.ID == id {
			return v, nil
		}
	}
	return plan.Version{}, ErrNotFound
}

// Count returns the number of stored versions.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.versions), nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements both store interfaces.
var (
	_ DraftStore   = (*MemoryStore)(nil)
	_ VersionStore = (*MemoryStore)(nil)
)
