// Package persistence stores and retrieves map snapshots.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/samdwyer/tileworld/internal/world"
)

var (
	// ErrNotFound is returned when no snapshot has the requested name.
	ErrNotFound = errors.New("snapshot not found")
	// ErrInvalidName is returned for names that cannot be stored safely.
	ErrInvalidName = errors.New("invalid snapshot name")
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// Storage defines the interface for snapshot persistence. Loads are
// all-or-nothing: a snapshot that fails to parse is never returned.
type Storage interface {
	SaveSnapshot(ctx context.Context, s *world.Snapshot) error
	LoadSnapshot(ctx context.Context, name string) (*world.Snapshot, error)
	ListSnapshots(ctx context.Context) ([]string, error)
	Close() error
}

// Open creates the storage backend named by kind ("file" or "postgres").
func Open(ctx context.Context, kind, dir, databaseURL string) (Storage, error) {
	switch kind {
	case "", "file":
		return NewFileStore(dir)
	case "postgres":
		return NewPostgresStore(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

func checkName(name string) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
