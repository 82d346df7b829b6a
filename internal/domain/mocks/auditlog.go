package mocks

import (
	"context"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

// AuditLog is a mock implementation of ports.AuditLog that records actions
// in memory.
type AuditLog struct {
	Entries []entities.AuditEntry
	LogErr  error
	FindErr error
}

// EnsureSchema is a no-op.
func (m *AuditLog) EnsureSchema(ctx context.Context) error { return nil }

// Close is a no-op.
func (m *AuditLog) Close() error { return nil }

// LogAction appends the action to Entries or returns the configured error.
func (m *AuditLog) LogAction(ctx context.Context, action, objectKey string, details map[string]any) error {
	if m.LogErr != nil {
		return m.LogErr
	}
	m.Entries = append(m.Entries, entities.AuditEntry{
		ID:        int64(len(m.Entries) + 1),
		Action:    action,
		ObjectKey: objectKey,
		Details:   details,
	})
	return nil
}

// Recent returns the newest entries, most recent first.
func (m *AuditLog) Recent(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	out := make([]entities.AuditEntry, 0, limit)
	for i := len(m.Entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.Entries[i])
	}
	return out, nil
}

// FindByKey returns all entries recorded against the key.
func (m *AuditLog) FindByKey(ctx context.Context, objectKey string) ([]entities.AuditEntry, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []entities.AuditEntry
	for _, e := range m.Entries {
		if e.ObjectKey == objectKey {
			out = append(out, e)
		}
	}
	return out, nil
}
