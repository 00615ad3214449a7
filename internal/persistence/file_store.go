package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/world"
)

const snapshotExt = ".json"

// FileStore keeps each snapshot as <name>.json in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "maps"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory snapshots are stored in.
func (st *FileStore) Dir() string { return st.dir }

// SaveSnapshot writes the snapshot atomically. A snapshot without an id takes
// the id of the one it overwrites, or a fresh one.
func (st *FileStore) SaveSnapshot(ctx context.Context, s *world.Snapshot) error {
	_, span := telemetry.Tracer("persistence").Start(ctx, "snapshot.save")
	defer span.End()

	if err := checkName(s.Header.Name); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Header.ID == "" {
		s.Header.ID = st.existingID(s.Header.Name)
	}
	if s.Header.ID == "" {
		s.Header.ID = uuid.NewString()
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", s.Header.Name, err)
	}

	tmp, err := os.CreateTemp(st.dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.Header.Name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save snapshot %s: %w", s.Header.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.Header.Name, err)
	}
	if err := os.Rename(tmp.Name(), st.path(s.Header.Name)); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.Header.Name, err)
	}

	span.SetAttributes(
		attribute.String("snapshot.name", s.Header.Name),
		attribute.Int("snapshot.bytes", len(data)),
	)
	return nil
}

// LoadSnapshot reads and parses a snapshot by name.
func (st *FileStore) LoadSnapshot(ctx context.Context, name string) (*world.Snapshot, error) {
	_, span := telemetry.Tracer("persistence").Start(ctx, "snapshot.load")
	defer span.End()

	if err := checkName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(st.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}

	s, err := world.ParseSnapshot(data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}

	span.SetAttributes(
		attribute.String("snapshot.name", name),
		attribute.Int("snapshot.width", s.Width()),
		attribute.Int("snapshot.height", s.Height()),
	)
	return s, nil
}

// ListSnapshots returns the stored snapshot names in lexical order.
func (st *FileStore) ListSnapshots(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(e.Name(), snapshotExt)
		if ok && checkName(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close implements Storage; the file store holds no resources.
func (st *FileStore) Close() error {
	return nil
}

// existingID returns the id stored under name, or "" when there is no
// readable snapshot to overwrite.
func (st *FileStore) existingID(name string) string {
	data, err := os.ReadFile(st.path(name))
	if err != nil {
		return ""
	}
	var doc []json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil || len(doc) == 0 {
		return ""
	}
	var header world.Header
	if err := json.Unmarshal(doc[0], &header); err != nil {
		return ""
	}
	return header.ID
}

func (st *FileStore) path(name string) string {
	return filepath.Join(st.dir, name+snapshotExt)
}
