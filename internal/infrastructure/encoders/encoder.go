// Package encoders projects curated entries into external representations.
package encoders

import (
	"io"
	"strings"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

// Format names.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// Encoder writes a collection of entries to w in one external format.
// It returns the number of records written, which may be smaller than the
// input when the format skips ineligible entries.
type Encoder interface {
	Encode(w io.Writer, entries []entities.Entry) (int, error)
}

// ForFormat returns the encoder for the given format, or nil for an unknown
// format. Supported formats: "csv", "jsonl".
func ForFormat(format string) Encoder {
	switch strings.ToLower(format) {
	case FormatCSV:
		return &CSVEncoder{}
	case FormatJSONL:
		return &JSONLEncoder{}
	default:
		return nil
	}
}
