package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"site_prompt_server/internal/types"
)

// ErrProjectNotFound is returned for unknown project IDs.
var ErrProjectNotFound = errors.New("project not found")

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ProjectSummary is a project listing entry without file contents.
type ProjectSummary struct {
	ID        string    `json:"projectId"`
	SessionID string    `json:"sessionId,omitempty"`
	BrandName string    `json:"brandName"`
	SiteType  string    `json:"siteType"`
	FileCount int       `json:"fileCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// SQLiteStore persists saved projects in SQLite.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the project database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	// A single connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		session_id TEXT,
		spec       TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS project_files (
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		filename   TEXT NOT NULL,
		type       TEXT NOT NULL,
		content    TEXT NOT NULL,
		position   INTEGER NOT NULL,
		PRIMARY KEY (project_id, filename)
	);
	CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at);`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveProject stores a project and its files, replacing any previous
// version with the same ID.
func (s *SQLiteStore) SaveProject(ctx context.Context, p types.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	specJSON, err := json.Marshal(p.Spec)
	if err != nil {
		return fmt.Errorf("marshal spec for %q: %w", p.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save %q: %w", p.ID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO projects (id, session_id, spec, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			spec = excluded.spec`,
		p.ID, p.SessionID, string(specJSON), p.CreatedAt.UTC().Format(timeLayout),
	); err != nil {
		return fmt.Errorf("save project %q: %w", p.ID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM project_files WHERE project_id = ?", p.ID); err != nil {
		return fmt.Errorf("clear files of %q: %w", p.ID, err)
	}
	for i, f := range p.Files {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO project_files (project_id, filename, type, content, position) VALUES (?, ?, ?, ?, ?)",
			p.ID, f.Filename, f.Type, f.Content, i,
		); err != nil {
			return fmt.Errorf("save file %s of %q: %w", f.Filename, p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit project %q: %w", p.ID, err)
	}
	return nil
}

// GetProject loads a project with its files in their saved order.
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*types.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessionID sql.NullString
	var specJSON, createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT session_id, spec, created_at FROM projects WHERE id = ?", id,
	).Scan(&sessionID, &specJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %q: %w", id, err)
	}

	p := &types.Project{ID: id, SessionID: sessionID.String}
	if err := json.Unmarshal([]byte(specJSON), &p.Spec); err != nil {
		return nil, fmt.Errorf("decode spec of %q: %w", id, err)
	}
	p.CreatedAt = parseTime(id, createdAt)

	rows, err := s.db.QueryContext(ctx,
		"SELECT filename, type, content FROM project_files WHERE project_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("get files of %q: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var f types.GeneratedFile
		if err := rows.Scan(&f.Filename, &f.Type, &f.Content); err != nil {
			return nil, fmt.Errorf("scan file of %q: %w", id, err)
		}
		p.Files = append(p.Files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files of %q: %w", id, err)
	}
	return p, nil
}

// ListProjects returns the most recent projects first.
func (s *SQLiteStore) ListProjects(ctx context.Context, limit int) ([]ProjectSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.session_id, p.spec, p.created_at,
			(SELECT COUNT(*) FROM project_files f WHERE f.project_id = p.id)
		FROM projects p
		ORDER BY p.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []ProjectSummary
	for rows.Next() {
		var sum ProjectSummary
		var sessionID sql.NullString
		var specJSON, createdAt string
		if err := rows.Scan(&sum.ID, &sessionID, &specJSON, &createdAt, &sum.FileCount); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		var spec struct {
			BrandName string `json:"brandName"`
			SiteType  string `json:"siteType"`
		}
		if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
			log.Printf("WARN: project %s has an unreadable spec: %v", sum.ID, err)
		}
		sum.SessionID = sessionID.String
		sum.BrandName = spec.BrandName
		sum.SiteType = spec.SiteType
		sum.CreatedAt = parseTime(sum.ID, createdAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// parseTime reads a created_at value, logging and returning the zero time
// when the row holds something else.
func parseTime(id, value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		log.Printf("WARN: project %s has an unreadable created_at %q: %v", id, value, err)
	}
	return t
}

// DeleteProject removes a project and its files.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete %q: %w", id, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM project_files WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("delete files of %q: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete project %q: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectNotFound
	}
	return tx.Commit()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
