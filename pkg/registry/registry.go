// Package registry keeps a local SQLite ledger of validated manifests, so a
// team can answer "which configs have we checked, and when" without re-running
// validation. One row per document fingerprint; re-validating a known document
// refreshes its row instead of duplicating it.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lightcone-ml/paramzoo/pkg/errors"
)

// Entry is one ledger row: a manifest identified by the sha256 of its bytes,
// plus the run-shaping facts worth listing without reloading the file.
type Entry struct {
	Fingerprint string
	Path        string
	Family      string
	Mode        string
	MaxSteps    int64
	CreatedAt   time.Time // first time this fingerprint was recorded
	ValidatedAt time.Time // most recent validation
}

// Registry is an open ledger database. Safe for concurrent use; the
// database/sql pool serializes access and WAL mode keeps readers unblocked.
type Registry struct {
	db *sql.DB
}

// Open opens or creates the ledger at path. The schema is applied on every
// open, so a fresh path yields a working ledger immediately.
func Open(path string) (*Registry, error) {
	if path == "" {
		path = "paramzoo.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.Unknown, "cannot open registry database"),
			errors.Fields{"path": path})
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	r := &Registry{db: db}
	if err := r.initDB(); err != nil {
		db.Close()
		return nil, errors.WithFields(
			errors.Wrap(err, errors.Unknown, "cannot initialize registry schema"),
			errors.Fields{"path": path})
	}

	// WAL keeps concurrent history reads from blocking behind a Record.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, errors.Unknown, "cannot enable WAL mode")
	}
	pragmas := []string{
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrap(err, errors.Unknown, fmt.Sprintf("cannot set %s", pragma))
		}
	}

	return r, nil
}

func (r *Registry) initDB() error {
	query := `
	CREATE TABLE IF NOT EXISTS manifests (
		fingerprint TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		family TEXT NOT NULL,
		mode TEXT NOT NULL DEFAULT '',
		max_steps INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		validated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_manifests_validated_at ON manifests(validated_at);
	CREATE INDEX IF NOT EXISTS idx_manifests_family ON manifests(family);
	`

	_, err := r.db.Exec(query)
	return err
}

// Record inserts the entry, or refreshes the existing row when the
// fingerprint is already known. Re-validating an unchanged document is
// routine, so a duplicate updates path and validated_at rather than erroring;
// created_at keeps the first sighting.
func (r *Registry) Record(ctx context.Context, e Entry) error {
	if e.Fingerprint == "" {
		return errors.New(errors.InvalidInput, "registry entry has no fingerprint")
	}
	if e.Family == "" {
		return errors.New(errors.InvalidInput, "registry entry has no family")
	}

	now := time.Now()
	created := e.CreatedAt
	if created.IsZero() {
		created = now
	}
	validated := e.ValidatedAt
	if validated.IsZero() {
		validated = now
	}

	query := `
	INSERT INTO manifests (fingerprint, path, family, mode, max_steps, created_at, validated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(fingerprint) DO UPDATE SET
		path = excluded.path,
		mode = excluded.mode,
		max_steps = excluded.max_steps,
		validated_at = excluded.validated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		e.Fingerprint, e.Path, e.Family, e.Mode, e.MaxSteps,
		created.UnixNano(), validated.UnixNano())
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.Unknown, "cannot record manifest"),
			errors.Fields{"fingerprint": e.Fingerprint})
	}
	return nil
}

// Find looks up one fingerprint. The second result reports whether the
// ledger knows it.
func (r *Registry) Find(ctx context.Context, fingerprint string) (Entry, bool, error) {
	query := `
	SELECT fingerprint, path, family, mode, max_steps, created_at, validated_at
	FROM manifests WHERE fingerprint = ?
	`

	var e Entry
	var created, validated int64
	err := r.db.QueryRowContext(ctx, query, fingerprint).Scan(
		&e.Fingerprint, &e.Path, &e.Family, &e.Mode, &e.MaxSteps, &created, &validated)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Wrap(err, errors.Unknown, "cannot query registry")
	}

	e.CreatedAt = time.Unix(0, created)
	e.ValidatedAt = time.Unix(0, validated)
	return e, true, nil
}

// List returns entries newest-validated first. A non-positive limit returns
// everything.
func (r *Registry) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
	SELECT fingerprint, path, family, mode, max_steps, created_at, validated_at
	FROM manifests ORDER BY validated_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot list registry entries")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created, validated int64
		if err := rows.Scan(&e.Fingerprint, &e.Path, &e.Family, &e.Mode,
			&e.MaxSteps, &created, &validated); err != nil {
			return nil, errors.Wrap(err, errors.Unknown, "cannot scan registry row")
		}
		e.CreatedAt = time.Unix(0, created)
		e.ValidatedAt = time.Unix(0, validated)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "cannot list registry entries")
	}
	return entries, nil
}

// Count reports how many manifests the ledger knows.
func (r *Registry) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM manifests`).Scan(&n)
	if err != nil {
		return 0, errors.Wrap(err, errors.Unknown, "cannot count registry entries")
	}
	return n, nil
}

// Close releases the database handle.
func (r *Registry) Close() error {
	return r.db.Close()
}
