package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mchmarny/exmenu/pkg/asset"

	_ "modernc.org/sqlite"
)

// DefaultTimeout is how long a connection waits on a locked database, in seconds.
const DefaultTimeout = 5

// Config holds SQLite connection settings.
type Config struct {
	Path    string
	Timeout int
}

// SQLite persists assets in a SQLite database.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at cfg.Path and initializes its schema.
func OpenSQLite(cfg Config) (*SQLite, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", cfg.Path, cfg.Timeout*1000)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path '%s': %w", cfg.Path, err)
	}

	// one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database at path '%s': %w", cfg.Path, err)
	}

	s := &SQLite{db: db, path: cfg.Path}
	if err := s.InitializeSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// InitializeSchema creates the asset tables.
func (s *SQLite) InitializeSchema() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS assets (
			path TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			data TEXT NOT NULL,
			modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create assets: %w", err)
	}

	_, err = tx.Exec(`
		CREATE TABLE IF NOT EXISTS sub_assets (
			root_path TEXT NOT NULL,
			seq INTEGER NOT NULL,
			id TEXT NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (root_path, seq)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sub_assets: %w", err)
	}

	return tx.Commit()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Clear deletes every sub object of root.
func (s *SQLite) Clear(ctx context.Context, root asset.Root) error {
	if err := asset.ValidateRoot(root); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM sub_assets WHERE root_path = ?`, root.AssetPath()); err != nil {
		return fmt.Errorf("failed to clear sub assets of %s: %w", root.AssetPath(), err)
	}
	return nil
}

// Pack appends obj to the sub objects of root.
func (s *SQLite) Pack(ctx context.Context, root asset.Root, obj asset.Object) error {
	if err := asset.ValidateRoot(root); err != nil {
		return err
	}
	r, err := encode(obj)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sub_assets (root_path, seq, id, kind, name, data)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?, ?
		FROM sub_assets WHERE root_path = ?
	`, root.AssetPath(), r.ID, string(r.Kind), r.Name, string(r.Data), root.AssetPath())
	if err != nil {
		return fmt.Errorf("failed to pack %s into %s: %w", r.Name, root.AssetPath(), err)
	}
	return nil
}

// Save inserts or replaces root.
func (s *SQLite) Save(ctx context.Context, root asset.Root) error {
	if err := asset.ValidateRoot(root); err != nil {
		return err
	}
	r, err := encode(root)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assets (path, id, kind, name, data, modified_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			kind = excluded.kind,
			name = excluded.name,
			data = excluded.data,
			modified_at = excluded.modified_at
	`, root.AssetPath(), r.ID, string(r.Kind), r.Name, string(r.Data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", root.AssetPath(), err)
	}
	return nil
}

// Load reads the asset at path and its sub objects.
func (s *SQLite) Load(ctx context.Context, path string) (*Snapshot, error) {
	snap := &Snapshot{Path: path}

	var kind, data string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, kind, name, data FROM assets WHERE path = ?`, path,
	).Scan(&snap.Root.ID, &kind, &snap.Root.Name, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	snap.Root.Kind = asset.Kind(kind)
	snap.Root.Data = []byte(data)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, name, data FROM sub_assets WHERE root_path = ? ORDER BY seq`, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sub assets of %s: %w", path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &kind, &r.Name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan sub asset of %s: %w", path, err)
		}
		r.Kind = asset.Kind(kind)
		r.Data = []byte(data)
		snap.Objects = append(snap.Objects, r)
	}

	return snap, rows.Err()
}

// Paths lists every stored root asset path.
func (s *SQLite) Paths(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path FROM assets ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
