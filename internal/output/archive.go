// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/get-papers-list/pkg/types"
)

// Archive appends fetch runs to a SQLite database so results from earlier
// queries can be compared later.
type Archive struct {
	db   *sql.DB
	path string
}

// OpenArchive opens or creates the archive database at path and ensures the
// schema exists.
func OpenArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &WriteError{Path: path, Err: fmt.Errorf("creating archive directory: %w", err)}
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, &WriteError{Path: path, Err: fmt.Errorf("opening database: %w", err)}
	}

	a := &Archive{db: db, path: path}
	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, &WriteError{Path: path, Err: fmt.Errorf("creating schema: %w", err)}
	}
	return a, nil
}

// Close releases the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			position INTEGER NOT NULL,
			pubmed_id TEXT NOT NULL,
			title TEXT,
			publication_date TEXT,
			non_academic_authors TEXT,
			company_affiliations TEXT,
			corresponding_author_email TEXT,
			PRIMARY KEY (run_id, pubmed_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_pubmed_id ON papers(pubmed_id)`,
	}
	for _, stmt := range statements {
		if _, err := a.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores records as a new run for query inside one transaction and
// returns the run ID. Record order is kept in the position column.
func (a *Archive) Save(ctx context.Context, query string, records []types.PaperRecord) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, &WriteError{Path: a.path, Err: fmt.Errorf("beginning transaction: %w", err)}
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, fetched_at) VALUES (?, ?)`,
		query, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, &WriteError{Path: a.path, Err: fmt.Errorf("inserting run: %w", err)}
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, &WriteError{Path: a.path, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO papers
		(run_id, position, pubmed_id, title, publication_date, non_academic_authors, company_affiliations, corresponding_author_email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, &WriteError{Path: a.path, Err: fmt.Errorf("preparing insert: %w", err)}
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, runID, i, r.PubmedID, r.Title, r.PublicationDate,
			r.NonAcademicAuthors, r.CompanyAffiliations, r.CorrespondingAuthorEmail); err != nil {
			return 0, &WriteError{Path: a.path, Err: fmt.Errorf("inserting paper %s: %w", r.PubmedID, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &WriteError{Path: a.path, Err: fmt.Errorf("committing run: %w", err)}
	}
	return runID, nil
}

// Records returns the records stored for runID in their original order.
func (a *Archive) Records(ctx context.Context, runID int64) ([]types.PaperRecord, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT pubmed_id, title, publication_date,
		non_academic_authors, company_affiliations, corresponding_author_email
		FROM papers WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run %d: %w", runID, err)
	}
	defer rows.Close()

	var records []types.PaperRecord
	for rows.Next() {
		var r types.PaperRecord
		if err := rows.Scan(&r.PubmedID, &r.Title, &r.PublicationDate,
			&r.NonAcademicAuthors, &r.CompanyAffiliations, &r.CorrespondingAuthorEmail); err != nil {
			return nil, fmt.Errorf("scanning paper row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// RunCount returns the number of runs stored in the archive.
func (a *Archive) RunCount(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT count(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
