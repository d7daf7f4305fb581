// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists a record of tangled outputs in SQLite and
// reports drift between the records and the files on disk.
// See docs/ARCHITECTURE § Output Catalog.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Catalog manages the outputs database.
type Catalog struct {
	db *sql.DB
}

// Entry describes one recorded output file.
type Entry struct {
	// Path is the output location as written, relative to the working
	// directory of the tangle run.
	Path string `json:"path" yaml:"path"`

	// Document is the source document the output was tangled from.
	Document string `json:"document" yaml:"document"`

	// SHA256 is the hex content hash at record time.
	SHA256 string `json:"sha256" yaml:"sha256"`

	// Bytes is the output size at record time.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// WrittenAt is the record timestamp in RFC 3339 form.
	WrittenAt string `json:"written_at" yaml:"written_at"`
}

// Open opens or creates the catalog database at path, creating the
// parent directory and the schema as needed.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS outputs (
			path TEXT PRIMARY KEY,
			document TEXT NOT NULL,
			sha256 TEXT NOT NULL,
			bytes INTEGER NOT NULL,
			written_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outputs_document ON outputs(document)`,
	}

	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record hashes each written output and upserts its row, all within one
// transaction keyed to the source document. It is called after a
// successful tangle run, so every path is expected to exist; a missing
// or unreadable file aborts the transaction.
func (c *Catalog) Record(ctx context.Context, document string, paths []string) (int, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO outputs (path, document, sha256, bytes, written_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			document=excluded.document, sha256=excluded.sha256,
			bytes=excluded.bytes, written_at=excluded.written_at`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)

	for _, path := range paths {
		sum, size, err := hashFile(path)
		if err != nil {
			return 0, fmt.Errorf("hashing %s: %w", path, err)
		}
		if _, err := stmt.ExecContext(ctx, path, document, sum, size, now); err != nil {
			return 0, fmt.Errorf("recording %s: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(paths), nil
}

// Entries returns every recorded output ordered by path.
func (c *Catalog) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT path, document, sha256, bytes, written_at FROM outputs ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("querying outputs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Document, &e.SHA256, &e.Bytes, &e.WrittenAt); err != nil {
			return nil, fmt.Errorf("scanning output row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// StatusSummary holds counts from a drift check.
type StatusSummary struct {
	Current  int
	Modified int
	Missing  int
}

// Total returns the number of recorded outputs checked.
func (s StatusSummary) Total() int {
	return s.Current + s.Modified + s.Missing
}

// HasDrift reports whether any output was modified or removed since it
// was recorded.
func (s StatusSummary) HasDrift() bool {
	return s.Modified > 0 || s.Missing > 0
}

// Status compares each recorded output against the file on disk,
// printing one line per output and a summary footer. Nothing is
// re-tangled or repaired; this is a report only.
func (c *Catalog) Status(ctx context.Context, w io.Writer) (StatusSummary, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return StatusSummary{}, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "no outputs recorded")
		return StatusSummary{}, nil
	}

	var summary StatusSummary
	for _, e := range entries {
		sum, _, err := hashFile(e.Path)
		switch {
		case os.IsNotExist(err):
			fmt.Fprintf(w, "missing  %s\n", e.Path)
			summary.Missing++
		case err != nil:
			return summary, fmt.Errorf("checking %s: %w", e.Path, err)
		case sum != e.SHA256:
			fmt.Fprintf(w, "modified %s\n", e.Path)
			summary.Modified++
		default:
			fmt.Fprintf(w, "current  %s\n", e.Path)
			summary.Current++
		}
	}

	fmt.Fprintf(w, "\ncurrent: %d, modified: %d, missing: %d\n",
		summary.Current, summary.Modified, summary.Missing)
	return summary, nil
}

// hashFile returns the hex SHA-256 of the file's content and its size.
func hashFile(path string) (string, int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	return fmt.Sprintf("%x", sha256.Sum256(data)), int64(len(data)), nil
}
