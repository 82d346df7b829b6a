package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
	"github.com/ersonp/feedback-curator/internal/domain/services"
)

// ApproveOptions carries the reviewer's input for one approval.
type ApproveOptions struct {
	ApprovedText string
	Notes        string
	Approver     string
	// DeleteRaw retires the raw object after the curated write succeeds.
	DeleteRaw bool
}

// ApproveResult is the outcome of one approval.
type ApproveResult struct {
	CuratedKey string
	RawRetired bool
	// Warning is set when the optional raw delete failed; the curated
	// write is not rolled back.
	Warning string
}

// ApproveHandler runs the approve-and-persist operation.
type ApproveHandler struct {
	review   *ReviewHandler
	curation *services.CurationService
	repo     *services.EntryRepository
	audit    ports.AuditLog
	log      *zap.Logger

	curBucket string
	curPrefix string
}

// NewApproveHandler creates a new approve handler. The review handler must
// be bound to the raw namespace.
func NewApproveHandler(review *ReviewHandler, curation *services.CurationService, repo *services.EntryRepository, audit ports.AuditLog, log *zap.Logger, curBucket, curPrefix string) *ApproveHandler {
	return &ApproveHandler{
		review:    review,
		curation:  curation,
		repo:      repo,
		audit:     audit,
		log:       log,
		curBucket: curBucket,
		curPrefix: curPrefix,
	}
}

// Handle loads the raw entry, builds the curated record, persists it, and
// optionally retires the raw object. Validation runs before any write; a
// failed raw delete is reported as a warning, never an error.
func (h *ApproveHandler) Handle(ctx context.Context, rawKey string, opts ApproveOptions) (*ApproveResult, error) {
	raw, err := h.review.Get(ctx, rawKey)
	if err != nil {
		return nil, err
	}

	curated, err := h.curation.Approve(raw, opts.ApprovedText, opts.Notes, opts.Approver)
	if err != nil {
		return nil, err
	}

	key, err := h.curation.Persist(ctx, curated, h.curBucket, h.curPrefix)
	if err != nil {
		return nil, fmt.Errorf("persisting curated entry: %w", err)
	}
	h.repo.InvalidateListing(h.curBucket, h.curPrefix)
	h.logAudit(ctx, entities.AuditActionApproved, key, map[string]any{
		"approver":       opts.Approver,
		"source_raw_key": rawKey,
	})

	result := &ApproveResult{CuratedKey: key}

	if opts.DeleteRaw {
		if err := h.curation.RetireRaw(ctx, raw.Origin.Bucket, raw.Origin.Key); err != nil {
			result.Warning = fmt.Sprintf("raw entry not deleted: %v", err)
		} else {
			result.RawRetired = true
			h.repo.InvalidateListing(raw.Origin.Bucket, ExtractPrefix(raw.Origin.Key))
			h.logAudit(ctx, entities.AuditActionRawRetired, rawKey, nil)
		}
	}

	return result, nil
}

// logAudit records the action best-effort; history failures never block the
// pipeline.
func (h *ApproveHandler) logAudit(ctx context.Context, action, key string, details map[string]any) {
	if h.audit == nil {
		return
	}
	if err := h.audit.LogAction(ctx, action, key, details); err != nil {
		h.log.Warn("audit log write failed", zap.String("action", action), zap.Error(err))
	}
}

// ExtractPrefix returns the first path segment of a key, the namespace
// prefix its listing is cached under.
func ExtractPrefix(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return key[:i]
		}
	}
	return key
}
