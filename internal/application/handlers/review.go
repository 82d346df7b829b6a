package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/services"
)

// Filter selects entries by date partition and content keyword.
type Filter struct {
	// Start and End bound the partition date, inclusive, as YYYY-MM-DD.
	Start string
	End   string
	// Keyword filters loaded entries; empty matches everything.
	Keyword string
	// Limit caps the result, applied last: the most recent N entries that
	// matched both filters. Zero means no cap.
	Limit int
}

// ReviewResult is the outcome of listing entries for review.
type ReviewResult struct {
	Entries []entities.Entry
	// Skipped reports objects that matched the filter but could not be
	// loaded.
	Skipped []services.SkippedKey
	// Warning is set when the key listing itself failed and degraded to
	// empty.
	Warning string
}

// ReviewHandler lists and fetches entries from one namespace.
type ReviewHandler struct {
	repo   *services.EntryRepository
	log    *zap.Logger
	bucket string
	prefix string
}

// NewReviewHandler creates a handler over one bucket/prefix namespace.
func NewReviewHandler(repo *services.EntryRepository, log *zap.Logger, bucket, prefix string) *ReviewHandler {
	return &ReviewHandler{
		repo:   repo,
		log:    log,
		bucket: bucket,
		prefix: prefix,
	}
}

// List applies the pipeline's fixed filter order: list keys, filter by date,
// load, filter by keyword, cap. The cap therefore selects the most recent N
// matching entries in key lexical order, not true chronological order of the
// timestamp field.
func (h *ReviewHandler) List(ctx context.Context, filter Filter) (*ReviewResult, error) {
	result := &ReviewResult{}

	keys, err := h.repo.ListKeys(ctx, h.bucket, h.prefix)
	if err != nil {
		// Degrade to an empty listing; the warning travels to the caller.
		result.Warning = fmt.Sprintf("listing %s/%s failed: %v", h.bucket, h.prefix, err)
		return result, nil
	}

	if filter.Start != "" || filter.End != "" {
		keys = services.FilterByDate(keys, filter.Start, filter.End)
	}

	loaded, err := h.repo.LoadEntries(ctx, h.bucket, keys)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	entries := services.FilterByKeyword(loaded.Entries, filter.Keyword)
	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}

	result.Entries = entries
	result.Skipped = loaded.Skipped
	return result, nil
}

// Get loads a single entry by key.
func (h *ReviewHandler) Get(ctx context.Context, key string) (entities.Entry, error) {
	loaded, err := h.repo.LoadEntries(ctx, h.bucket, []string{key})
	if err != nil {
		return entities.Entry{}, fmt.Errorf("loading entry: %w", err)
	}
	if len(loaded.Entries) == 0 {
		reason := "not found"
		if len(loaded.Skipped) > 0 {
			reason = loaded.Skipped[0].Reason
		}
		return entities.Entry{}, fmt.Errorf("entry %s: %s", key, reason)
	}
	return loaded.Entries[0], nil
}
