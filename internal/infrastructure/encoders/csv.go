package encoders

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

// utf8BOM lets spreadsheet tools detect the encoding; the original export
// consumers expect it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader is the fixed column set: the persisted entry fields plus the
// origin bookkeeping columns.
var csvHeader = []string{
	"timestamp",
	"prompt",
	"ai_response",
	"approved_response",
	"approved_by",
	"approved_at",
	"review_notes",
	"used_model",
	"source_raw_bucket",
	"source_raw_key",
	"origin_bucket",
	"origin_key",
}

// CSVEncoder writes entries as UTF-8 CSV with a BOM. Every entry becomes
// exactly one row; missing fields render as empty cells, never as an error.
type CSVEncoder struct{}

// Encode writes the header and one row per entry.
func (e *CSVEncoder) Encode(w io.Writer, entries []entities.Entry) (int, error) {
	if _, err := w.Write(utf8BOM); err != nil {
		return 0, fmt.Errorf("writing BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for i, entry := range entries {
		row := []string{
			entry.Timestamp,
			entry.Prompt,
			entry.AIResponse,
			entry.ApprovedResponse,
			entry.ApprovedBy,
			entry.ApprovedAt,
			entry.ReviewNotes,
			entry.UsedModel,
			entry.SourceRawBucket,
			entry.SourceRawKey,
			entry.Origin.Bucket,
			entry.Origin.Key,
		}
		if err := writer.Write(row); err != nil {
			return i, fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(entries), nil
}
