package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileworld/internal/telemetry"
	"github.com/samdwyer/tileworld/internal/world"
)

const defaultDatabaseURL = "host=localhost user=tileworld password=tileworld dbname=tileworld sslmode=disable"

// PostgresStore keeps snapshots in a PostgreSQL table, cells as JSONB in the
// same [floor, block] shape as the file format.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	if connectionString == "" {
		connectionString = defaultDatabaseURL
	}

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id UUID PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		cells JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.ExecContext(ctx, schema)
	return err
}

// SaveSnapshot inserts or replaces the snapshot with the same name.
func (ps *PostgresStore) SaveSnapshot(ctx context.Context, s *world.Snapshot) error {
	ctx, span := telemetry.Tracer("persistence").Start(ctx, "snapshot.save")
	defer span.End()

	if err := checkName(s.Header.Name); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s.Header.ID == "" {
		s.Header.ID = uuid.NewString()
	}

	cellsJSON, err := json.Marshal(s.Cells)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot cells: %w", err)
	}

	query := `
	INSERT INTO snapshots (id, name, width, height, cells)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (name)
	DO UPDATE SET
		width = $3, height = $4, cells = $5,
		updated_at = NOW()
	RETURNING id
	`

	var id string
	err = ps.db.QueryRowContext(ctx, query,
		s.Header.ID, s.Header.Name, s.Width(), s.Height(), string(cellsJSON)).Scan(&id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to save snapshot %s: %w", s.Header.Name, err)
	}
	s.Header.ID = id

	span.SetAttributes(attribute.String("snapshot.name", s.Header.Name))
	return nil
}

// LoadSnapshot loads a snapshot by name.
func (ps *PostgresStore) LoadSnapshot(ctx context.Context, name string) (*world.Snapshot, error) {
	ctx, span := telemetry.Tracer("persistence").Start(ctx, "snapshot.load")
	defer span.End()

	if err := checkName(name); err != nil {
		return nil, err
	}

	var id, cellsJSON string
	err := ps.db.QueryRowContext(ctx,
		`SELECT id, cells FROM snapshots WHERE name = $1`, name).Scan(&id, &cellsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}

	s := &world.Snapshot{Header: world.Header{Name: name, ID: id}}
	if err := json.Unmarshal([]byte(cellsJSON), &s.Cells); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w: %v", name, world.ErrMalformedSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", name, err)
	}

	span.SetAttributes(
		attribute.String("snapshot.name", name),
		attribute.Int("snapshot.width", s.Width()),
		attribute.Int("snapshot.height", s.Height()),
	)
	return s, nil
}

// ListSnapshots returns stored snapshot names in lexical order.
func (ps *PostgresStore) ListSnapshots(ctx context.Context) ([]string, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT name FROM snapshots ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
