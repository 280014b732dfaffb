// Package db is the migration ledger: which pages were written where, from
// which rendered content, and a history of migration runs.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"
)

type DB struct {
	conn *sql.DB
}

func New(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	conn, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	queries := []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_run_id START 1;`,

		`CREATE TABLE IF NOT EXISTS pages (
			page_id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			path TEXT NOT NULL,
			content_hash TEXT NOT NULL,
			last_edited_at TIMESTAMP,
			migrated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_run_id'),
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP NOT NULL,
			succeeded INTEGER NOT NULL,
			total INTEGER NOT NULL
		)`,
	}

	for _, q := range queries {
		if _, err := db.conn.Exec(q); err != nil {
			return fmt.Errorf("executing %q: %w", q, err)
		}
	}
	return nil
}

// --- Page operations ---

type Page struct {
	PageID       string
	Title        string
	Path         string
	ContentHash  string
	LastEditedAt *time.Time
	MigratedAt   time.Time
}

// RecordMigration inserts or replaces the ledger entry for a page.
func (db *DB) RecordMigration(p Page) error {
	var edited any
	if p.LastEditedAt != nil {
		edited = p.LastEditedAt.UTC()
	}
	_, err := db.conn.Exec(
		`INSERT INTO pages (page_id, title, path, content_hash, last_edited_at, migrated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (page_id) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			content_hash = excluded.content_hash,
			last_edited_at = excluded.last_edited_at,
			migrated_at = CURRENT_TIMESTAMP`,
		p.PageID, p.Title, p.Path, p.ContentHash, edited,
	)
	if err != nil {
		return fmt.Errorf("recording migration of %s: %w", p.PageID, err)
	}
	return nil
}

// GetPage returns the ledger entry for a page, or nil if it was never
// migrated.
func (db *DB) GetPage(pageID string) (*Page, error) {
	var p Page
	err := db.conn.QueryRow(
		`SELECT page_id, title, path, content_hash, last_edited_at, migrated_at FROM pages WHERE page_id = ?`,
		pageID,
	).Scan(&p.PageID, &p.Title, &p.Path, &p.ContentHash, &p.LastEditedAt, &p.MigratedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting page %s: %w", pageID, err)
	}
	return &p, nil
}

// ListPages returns every migrated page, most recent first.
func (db *DB) ListPages() ([]Page, error) {
	rows, err := db.conn.Query(
		`SELECT page_id, title, path, content_hash, last_edited_at, migrated_at FROM pages ORDER BY migrated_at DESC, title`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.PageID, &p.Title, &p.Path, &p.ContentHash, &p.LastEditedAt, &p.MigratedAt); err != nil {
			return nil, fmt.Errorf("scanning page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// PathsByID maps page ids to the vault paths they were written to.
func (db *DB) PathsByID() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT page_id, path FROM pages`)
	if err != nil {
		return nil, fmt.Errorf("listing page paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[string]string)
	for rows.Next() {
		var id, path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, fmt.Errorf("scanning page path: %w", err)
		}
		paths[id] = path
	}
	return paths, rows.Err()
}

// --- Run operations ---

type Run struct {
	ID         int
	StartedAt  time.Time
	FinishedAt time.Time
	Succeeded  int
	Total      int
}

func (db *DB) RecordRun(r Run) (int, error) {
	var id int
	err := db.conn.QueryRow(
		`INSERT INTO runs (started_at, finished_at, succeeded, total) VALUES (?, ?, ?, ?) RETURNING id`,
		r.StartedAt.UTC(), r.FinishedAt.UTC(), r.Succeeded, r.Total,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// LastRun returns the most recent run, or nil if none was recorded.
func (db *DB) LastRun() (*Run, error) {
	var r Run
	err := db.conn.QueryRow(
		`SELECT id, started_at, finished_at, succeeded, total FROM runs ORDER BY id DESC LIMIT 1`,
	).Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Succeeded, &r.Total)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting last run: %w", err)
	}
	return &r, nil
}
