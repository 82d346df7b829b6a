package ports

import (
	"context"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

// AuditLog defines the interface for the local action history.
type AuditLog interface {
	// EnsureSchema creates the log schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying store.
	Close() error

	// LogAction records a pipeline action against an object key.
	LogAction(ctx context.Context, action, objectKey string, details map[string]any) error

	// Recent returns the newest entries, most recent first.
	Recent(ctx context.Context, limit int) ([]entities.AuditEntry, error)

	// FindByKey returns all entries recorded against an object key.
	FindByKey(ctx context.Context, objectKey string) ([]entities.AuditEntry, error)
}
