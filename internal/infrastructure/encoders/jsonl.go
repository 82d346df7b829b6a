package encoders

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

// trainingPart is one text fragment of a turn.
type trainingPart struct {
	Text string `json:"text"`
}

// trainingTurn is one role's contribution to the exchange.
type trainingTurn struct {
	Role  string         `json:"role"`
	Parts []trainingPart `json:"parts"`
}

// trainingRecord is the line shape the tuning pipeline ingests: a two-turn
// user/model exchange.
type trainingRecord struct {
	Contents []trainingTurn `json:"contents"`
}

// JSONLEncoder writes entries as line-delimited training pairs. An entry
// whose prompt or output trims to empty is skipped entirely; output order
// follows input order.
type JSONLEncoder struct{}

// Encode writes one JSON line per retained entry and returns how many were
// written.
func (e *JSONLEncoder) Encode(w io.Writer, entries []entities.Entry) (int, error) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	written := 0
	for _, entry := range entries {
		prompt := strings.TrimSpace(entry.Prompt)
		output := entry.TrainingOutput()
		if prompt == "" || output == "" {
			continue
		}

		record := trainingRecord{
			Contents: []trainingTurn{
				{Role: "user", Parts: []trainingPart{{Text: prompt}}},
				{Role: "model", Parts: []trainingPart{{Text: output}}},
			},
		}
		if err := enc.Encode(record); err != nil {
			return written, fmt.Errorf("encoding training pair: %w", err)
		}
		written++
	}
	return written, nil
}
