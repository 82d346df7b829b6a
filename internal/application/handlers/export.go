package handlers

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
	"github.com/ersonp/feedback-curator/internal/domain/ports"
	"github.com/ersonp/feedback-curator/internal/domain/services"
	"github.com/ersonp/feedback-curator/internal/infrastructure/encoders"
)

// ExportResult is the outcome of one export run.
type ExportResult struct {
	// Loaded is how many curated entries matched the filter.
	Loaded int
	// Written is how many records the encoder emitted; the JSONL encoder
	// skips entries with no prompt or output.
	Written int
	// SkippedObjects reports curated objects that could not be loaded.
	SkippedObjects []services.SkippedKey
	// Warning is set when the curated listing failed and degraded to empty.
	Warning string
}

// ExportHandler projects the curated corpus into an external format.
type ExportHandler struct {
	review *ReviewHandler
	audit  ports.AuditLog
	log    *zap.Logger
}

// NewExportHandler creates a new export handler. The review handler must be
// bound to the curated namespace.
func NewExportHandler(review *ReviewHandler, audit ports.AuditLog, log *zap.Logger) *ExportHandler {
	return &ExportHandler{
		review: review,
		audit:  audit,
		log:    log,
	}
}

// Handle loads the filtered curated entries and encodes them to w.
func (h *ExportHandler) Handle(ctx context.Context, filter Filter, format string, w io.Writer) (*ExportResult, error) {
	encoder := encoders.ForFormat(format)
	if encoder == nil {
		return nil, fmt.Errorf("unknown export format: %s", format)
	}

	listed, err := h.review.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	written, err := encoder.Encode(w, listed.Entries)
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}

	result := &ExportResult{
		Loaded:         len(listed.Entries),
		Written:        written,
		SkippedObjects: listed.Skipped,
		Warning:        listed.Warning,
	}

	if h.audit != nil {
		if err := h.audit.LogAction(ctx, entities.AuditActionExported, "", map[string]any{
			"format":  format,
			"written": written,
		}); err != nil {
			h.log.Warn("audit log write failed", zap.Error(err))
		}
	}
	return result, nil
}
