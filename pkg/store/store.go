// Package store persists timeline documents: the working draft and the
// published version history.
//
// Two backends exist. The file store keeps the draft as a JSON document
// under a data directory and suits single-user CLI usage. The Mongo
// store holds published versions and suits the served deployment. Both
// sides are small interfaces so handlers and commands can be tested
// against in-memory fakes.
package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/tmarsh/gantry/pkg/plan"
)

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a requested draft or version does not exist.
	ErrNotFound = errors.New("not found")
)

// DraftStore persists the single working draft.
type DraftStore interface {
	// Load retrieves the draft. Returns ErrNotFound when none was saved.
	Load(ctx context.Context) (*plan.Document, error)

	// Save overwrites the draft.
	Save(ctx context.Context, doc *plan.Document) error

	// Close releases any underlying resources.
	Close() error
}

// VersionStore persists published snapshots.
type VersionStore interface {
	// SaveVersion appends a snapshot under the given label and returns
	// the stored version.
	SaveVersion(ctx context.Context, label string, doc *plan.Document) (plan.Version, error)

	// List returns all versions, newest first.
	List(ctx context.Context) ([]plan.Version, error)

	// Get retrieves one version by ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, id string) (plan.Version, error)

	// Count returns the number of stored versions.
	Count(ctx context.Context) (int, error)

	// Close releases any underlying resources.
	Close() error
}

// NextLabel returns the automatic label for the next snapshot: V1 for
// an empty history, then V2, V3, ...
func NextLabel(ctx context.Context, vs VersionStore) (string, error) {
	n, err := vs.Count(ctx)
	if err != nil {
		return "", err
	}
	return "V" + strconv.Itoa(n+1), nil
}
