// Package sqlite provides a SQLite implementation of the AuditLog interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

// Repository implements ports.AuditLog using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite audit log at the given path.
func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the audit schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		object_key TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_actions_key ON actions(object_key);
	CREATE INDEX IF NOT EXISTS idx_actions_action ON actions(action);
	CREATE INDEX IF NOT EXISTS idx_actions_created ON actions(created_at);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// LogAction records a pipeline action against an object key.
func (r *Repository) LogAction(ctx context.Context, action, objectKey string, details map[string]any) error {
	var detailsJSON []byte
	if details != nil {
		var err error
		detailsJSON, err = json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
	}

	query := `INSERT INTO actions (action, object_key, details, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, action, objectKey, string(detailsJSON), time.Now().UTC()); err != nil {
		return fmt.Errorf("inserting action: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, object_key, details, created_at
		FROM actions
		ORDER BY id DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying actions: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// FindByKey returns all entries recorded against an object key, oldest first.
func (r *Repository) FindByKey(ctx context.Context, objectKey string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, object_key, details, created_at
		FROM actions
		WHERE object_key = ?
		ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, objectKey)
	if err != nil {
		return nil, fmt.Errorf("querying actions by key: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]entities.AuditEntry, error) {
	var entries []entities.AuditEntry
	for rows.Next() {
		var (
			entry       entities.AuditEntry
			objectKey   sql.NullString
			detailsJSON sql.NullString
			createdAt   time.Time
		)
		if err := rows.Scan(&entry.ID, &entry.Action, &objectKey, &detailsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning action: %w", err)
		}
		entry.ObjectKey = objectKey.String
		entry.CreatedAt = createdAt
		if detailsJSON.String != "" {
			if err := json.Unmarshal([]byte(detailsJSON.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("parsing action details: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
