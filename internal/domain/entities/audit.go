package entities

import "time"

// Audit actions recorded by the pipeline.
const (
	AuditActionDraftGenerated = "draft_generated"
	AuditActionApproved       = "approved"
	AuditActionMinted         = "minted"
	AuditActionRawRetired     = "raw_retired"
	AuditActionExported       = "exported"
)

// AuditEntry represents a logged pipeline action.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	ObjectKey string         `json:"object_key,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
