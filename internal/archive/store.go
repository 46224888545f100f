// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps an optional local SQLite index of exported issues,
// so past exports can be searched offline with full-text queries. The export
// path itself never touches the archive; ingestion is opt-in.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/jira-export/pkg/types"
)

const dbFile = "archive.db"

// Store manages the archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the archive database at cfg.Dir/archive.db,
// creating the schema when missing.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "archive"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS issues (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL UNIQUE,
			project TEXT NOT NULL,
			summary TEXT,
			status TEXT,
			parent_key TEXT,
			parent_summary TEXT,
			description TEXT,
			archived_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_project ON issues(project)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='issues_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE issues_fts USING fts5(summary, description, content=issues, content_rowid=rowid)`,
			`CREATE TRIGGER issues_ai AFTER INSERT ON issues BEGIN
				INSERT INTO issues_fts(rowid, summary, description) VALUES (new.rowid, new.summary, new.description);
			END`,
			`CREATE TRIGGER issues_ad AFTER DELETE ON issues BEGIN
				INSERT INTO issues_fts(issues_fts, rowid, summary, description) VALUES('delete', old.rowid, old.summary, old.description);
			END`,
			`CREATE TRIGGER issues_au AFTER UPDATE ON issues BEGIN
				INSERT INTO issues_fts(issues_fts, rowid, summary, description) VALUES('delete', old.rowid, old.summary, old.description);
				INSERT INTO issues_fts(rowid, summary, description) VALUES (new.rowid, new.summary, new.description);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from one archive ingestion run.
type IngestSummary struct {
	Added   int
	Updated int
}

// Total returns the number of issues processed.
func (s IngestSummary) Total() int {
	return s.Added + s.Updated
}

// Ingest stores every issue in one transaction, replacing records that were
// archived before under the same key.
func (s *Store) Ingest(ctx context.Context, project string, issues []types.Issue) (IngestSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO issues (key, project, summary, status, parent_key, parent_summary, description, archived_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	var summary IngestSummary

	for _, issue := range issues {
		var exists int
		err := tx.QueryRowContext(ctx,
			`SELECT count(*) FROM issues WHERE key = ?`, issue.Key,
		).Scan(&exists)
		if err != nil {
			return summary, fmt.Errorf("checking issue %s: %w", issue.Key, err)
		}

		parentKey, parentSummary := "", ""
		if issue.Parent != nil {
			parentKey = issue.Parent.Key
			parentSummary = issue.Parent.Summary
		}

		if _, err := stmt.ExecContext(ctx,
			issue.Key, project, issue.Summary, issue.Status,
			parentKey, parentSummary, issue.Description, now,
		); err != nil {
			return summary, fmt.Errorf("archiving issue %s: %w", issue.Key, err)
		}

		if exists > 0 {
			summary.Updated++
		} else {
			summary.Added++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing archive ingest: %w", err)
	}
	return summary, nil
}

// Hit is one full-text search match.
type Hit struct {
	types.Issue
	Project string
}

// Find runs a ranked FTS5 query over archived summaries and descriptions.
// A limit of zero uses the store default.
func (s *Store) Find(ctx context.Context, query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, fmt.Errorf("find query is empty")
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT i.key, i.project, i.summary, i.status, i.parent_key, i.parent_summary, i.description
		 FROM issues_fts
		 JOIN issues i ON i.rowid = issues_fts.rowid
		 WHERE issues_fts MATCH ?
		 ORDER BY issues_fts.rank
		 LIMIT ?`,
		query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h                        Hit
			parentKey, parentSummary sql.NullString
		)
		if err := rows.Scan(&h.Key, &h.Project, &h.Summary, &h.Status,
			&parentKey, &parentSummary, &h.Description); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		if parentKey.String != "" {
			h.Parent = &types.ParentRef{Key: parentKey.String, Summary: parentSummary.String}
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading archive rows: %w", err)
	}
	return hits, nil
}
