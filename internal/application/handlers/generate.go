package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
	"github.com/ersonp/feedback-curator/internal/domain/services"
)

// ErrEmptyDraft is returned when the model produced no usable text on either
// generation leg.
var ErrEmptyDraft = errors.New("model returned an empty draft")

// GenerateHandler requests drafts and persists admin-authored curated
// entries built from them.
type GenerateHandler struct {
	generator ports.DraftGenerator
	curation  *services.CurationService
	repo      *services.EntryRepository
	audit     ports.AuditLog
	log       *zap.Logger

	curBucket string
	curPrefix string
}

// NewGenerateHandler creates a new generate handler.
func NewGenerateHandler(generator ports.DraftGenerator, curation *services.CurationService, repo *services.EntryRepository, audit ports.AuditLog, log *zap.Logger, curBucket, curPrefix string) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		curation:  curation,
		repo:      repo,
		audit:     audit,
		log:       log,
		curBucket: curBucket,
		curPrefix: curPrefix,
	}
}

// Handle requests one draft and records it on the session. An empty draft is
// an error carrying the block reason when one is known; the draft's attempt
// detail stays on the session for diagnostics either way.
func (h *GenerateHandler) Handle(ctx context.Context, session *Session, prompt string) (*ports.Draft, error) {
	draft, err := h.generator.Generate(ctx, prompt)
	session.LastPrompt = prompt
	session.LastDraft = draft
	if err != nil {
		session.Record(fmt.Sprintf("generation failed: %v", err))
		return draft, fmt.Errorf("generating draft: %w", err)
	}

	if draft.Text == "" {
		session.Record("generation returned no text")
		if draft.Blocked {
			return draft, fmt.Errorf("%w (blocked: %s)", ErrEmptyDraft, draft.Reason)
		}
		return draft, ErrEmptyDraft
	}

	session.Record(fmt.Sprintf("draft generated via %s (%d chars)", draft.Route, len(draft.Text)))
	if h.audit != nil {
		if err := h.audit.LogAction(ctx, entities.AuditActionDraftGenerated, "", map[string]any{
			"model": h.generator.Model(),
			"route": string(draft.Route),
		}); err != nil {
			h.log.Warn("audit log write failed", zap.Error(err))
		}
	}
	return draft, nil
}

// SaveFresh persists an ad-hoc curated entry from the session's last draft.
// The approved text defaults to the draft when the reviewer made no edits.
func (h *GenerateHandler) SaveFresh(ctx context.Context, session *Session, approvedText, approver string) (string, error) {
	if session.LastDraft == nil {
		return "", errors.New("no draft in this session; run generate first")
	}

	if approvedText == "" {
		approvedText = session.LastDraft.Text
	}

	entry, err := h.curation.MintFresh(session.LastPrompt, session.LastDraft.Text, approvedText, approver, h.generator.Model())
	if err != nil {
		return "", err
	}

	key, err := h.curation.Persist(ctx, entry, h.curBucket, h.curPrefix)
	if err != nil {
		return "", fmt.Errorf("persisting curated entry: %w", err)
	}
	h.repo.InvalidateListing(h.curBucket, h.curPrefix)
	session.Record("fresh curated entry saved: " + key)

	if h.audit != nil {
		if err := h.audit.LogAction(ctx, entities.AuditActionMinted, key, map[string]any{"approver": approver}); err != nil {
			h.log.Warn("audit log write failed", zap.Error(err))
		}
	}
	return key, nil
}
