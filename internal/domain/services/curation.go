package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
)

// ValidationError reports reviewer input that fails validation before any
// write is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CurationService turns raw entries plus reviewer input into curated entries
// and persists them. Entries are immutable: curation always writes a new
// record, never patches one in place.
type CurationService struct {
	store ports.BlobStore
	log   *zap.Logger

	// now can be swapped in tests to pin approval timestamps.
	now func() string
}

// NewCurationService creates a new curation service.
func NewCurationService(store ports.BlobStore, log *zap.Logger) *CurationService {
	return &CurationService{
		store: store,
		log:   log,
		now:   func() string { return timeNow().UTC().Format(TimestampLayout) },
	}
}

// Approve produces a curated entry from a raw entry and the reviewer's final
// text. All raw fields carry over; the approved fields are stamped and the
// provenance pointer is set from the raw entry's origin. Whitespace-only
// approved text is a validation error.
func (s *CurationService) Approve(raw entities.Entry, approvedText, notes, approver string) (entities.Entry, error) {
	text := strings.TrimSpace(approvedText)
	if text == "" {
		return entities.Entry{}, &ValidationError{Field: "approved text", Reason: "must not be empty"}
	}

	curated := raw
	curated.ApprovedResponse = text
	curated.ApprovedBy = approver
	curated.ApprovedAt = s.now()
	curated.ReviewNotes = notes
	curated.SourceRawBucket = raw.Origin.Bucket
	curated.SourceRawKey = raw.Origin.Key
	return curated, nil
}

// MintFresh builds a curated entry from scratch, used for ad-hoc
// admin-authored drafts with no prior raw submission. No provenance pointer
// is set.
func (s *CurationService) MintFresh(prompt, draftText, approvedText, approver, model string) (entities.Entry, error) {
	if strings.TrimSpace(prompt) == "" {
		return entities.Entry{}, &ValidationError{Field: "prompt", Reason: "must not be empty"}
	}
	text := strings.TrimSpace(approvedText)
	if text == "" {
		return entities.Entry{}, &ValidationError{Field: "approved text", Reason: "must not be empty"}
	}

	ts := s.now()
	return entities.Entry{
		Timestamp:        ts,
		Prompt:           prompt,
		AIResponse:       draftText,
		ApprovedResponse: text,
		ApprovedBy:       approver,
		ApprovedAt:       ts,
		UsedModel:        model,
	}, nil
}

// Persist writes the curated entry under the curated prefix and returns the
// destination key. The key re-parents the raw key when provenance is known,
// preserving the date partition; otherwise a fresh key is minted under
// today's UTC date. The record is serialized once and written in a single
// Put, so the object either fully exists or the write failed.
func (s *CurationService) Persist(ctx context.Context, entry entities.Entry, bucket, prefix string) (string, error) {
	key := DeriveCuratedKey(entry.SourceRawKey, prefix)

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing entry: %w", err)
	}

	if err := s.store.Put(ctx, bucket, key, data); err != nil {
		return "", fmt.Errorf("writing %s/%s: %w", bucket, key, err)
	}

	s.log.Info("curated entry written",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("source_raw_key", entry.SourceRawKey))
	return key, nil
}

// RetireRaw deletes the raw object after approval. It is optional and
// independent of Persist: a failed delete must not undo the completed
// curation write, so the returned error is a warning for the caller, not a
// rollback trigger.
func (s *CurationService) RetireRaw(ctx context.Context, bucket, key string) error {
	if err := s.store.Delete(ctx, bucket, key); err != nil {
		s.log.Warn("retiring raw entry failed",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("deleting %s/%s: %w", bucket, key, err)
	}
	return nil
}
