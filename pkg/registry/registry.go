// Package registry persists processed papers so re-uploads of identical
// content are served from storage instead of re-running extraction.
package registry

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/frido22/ai-paper-agent/pkg/argument"
)

// ErrNotFound is returned when a paper lookup matches nothing.
var ErrNotFound = errors.New("paper not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS papers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	content_hash TEXT NOT NULL UNIQUE,
	page_count INTEGER NOT NULL,
	score INTEGER,
	score_justification TEXT,
	graph TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_papers_hash ON papers(content_hash);
`

// Paper is one processed-paper record.
type Paper struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	ContentHash        string          `json:"content_hash"`
	PageCount          int             `json:"page_count"`
	Score              *int            `json:"score,omitempty"`
	ScoreJustification string          `json:"score_justification,omitempty"`
	Graph              argument.Output `json:"graph"`
	CreatedAt          string          `json:"created_at"`
}

// Registry wraps the SQLite database holding processed papers.
type Registry struct {
	db *sql.DB
}

// New opens (or creates) the registry database at the given path and
// initialises the schema.
func New(dbPath string) (*Registry, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Registry{db: db}, nil
}

// Close closes the underlying database connection.
func (r *Registry) Close() error {
	return r.db.Close()
}

// Save stores a processed paper and returns its record. If a paper with the
// same content hash already exists, the existing record is returned
// untouched; extraction results are immutable per content hash.
func (r *Registry) Save(ctx context.Context, name, contentHash string, pageCount int, graph argument.Output) (*Paper, error) {
	if existing, err := r.GetByHash(ctx, contentHash); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generating paper id: %w", err)
	}

	raw, err := json.Marshal(graph)
	if err != nil {
		return nil, fmt.Errorf("serializing graph: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO papers (id, name, content_hash, page_count, graph)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, contentHash, pageCount, string(raw))
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// SetScore stores the consistency verdict for a paper.
func (r *Registry) SetScore(ctx context.Context, id string, score int, justification string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE papers SET score = ?, score_justification = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, score, justification, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Get retrieves a paper by its registry ID.
func (r *Registry) Get(ctx context.Context, id string) (*Paper, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, content_hash, page_count, score, score_justification, graph, created_at
		FROM papers WHERE id = ?
	`, id))
}

// GetByHash retrieves a paper by its content hash.
func (r *Registry) GetByHash(ctx context.Context, contentHash string) (*Paper, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, content_hash, page_count, score, score_justification, graph, created_at
		FROM papers WHERE content_hash = ?
	`, contentHash))
}

// List returns all papers, newest first, without their graphs. Graphs can be
// large; listings only need the metadata.
func (r *Registry) List(ctx context.Context) ([]Paper, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, content_hash, page_count, score, score_justification, created_at
		FROM papers ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var papers []Paper
	for rows.Next() {
		var p Paper
		var score sql.NullInt64
		var justification sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.ContentHash, &p.PageCount,
			&score, &justification, &p.CreatedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			p.Score = &v
		}
		p.ScoreJustification = justification.String
		p.Graph = argument.Output{Nodes: []argument.Component{}, Edges: []argument.Relation{}}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}

// Delete removes a paper record.
func (r *Registry) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM papers WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Registry) scanOne(row *sql.Row) (*Paper, error) {
	var p Paper
	var score sql.NullInt64
	var justification sql.NullString
	var rawGraph string

	err := row.Scan(&p.ID, &p.Name, &p.ContentHash, &p.PageCount,
		&score, &justification, &rawGraph, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if score.Valid {
		v := int(score.Int64)
		p.Score = &v
	}
	p.ScoreJustification = justification.String

	if err := json.Unmarshal([]byte(rawGraph), &p.Graph); err != nil {
		return nil, fmt.Errorf("deserializing graph for %s: %w", p.ID, err)
	}
	return &p, nil
}
