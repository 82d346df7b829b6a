package encoders

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/feedback-curator/internal/domain/entities"
)

func TestForFormat(t *testing.T) {
	assert.IsType(t, &CSVEncoder{}, ForFormat("csv"))
	assert.IsType(t, &CSVEncoder{}, ForFormat("CSV"))
	assert.IsType(t, &JSONLEncoder{}, ForFormat("jsonl"))
	assert.Nil(t, ForFormat("xml"))
}

func TestCSVEncoder(t *testing.T) {
	entries := []entities.Entry{
		{
			Timestamp:        "2025-01-01T09:30:00Z",
			Prompt:           "p",
			AIResponse:       "r",
			ApprovedResponse: "r2",
			ApprovedBy:       "admin",
			ApprovedAt:       "2025-01-02T10:00:00Z",
			ReviewNotes:      "ok",
			UsedModel:        "endpoint-1",
			SourceRawBucket:  "bucket",
			SourceRawKey:     "raw/2025-01-01/a.json",
			Origin:           entities.Origin{Bucket: "bucket", Key: "curated/2025-01-01/a.json"},
		},
		{
			// Missing fields render as empty cells.
			Prompt: "only a prompt",
		},
	}

	var buf bytes.Buffer
	n, err := (&CSVEncoder{}).Encode(&buf, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}), "output should start with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"2025-01-01T09:30:00Z", "p", "r", "r2", "admin", "2025-01-02T10:00:00Z",
		"ok", "endpoint-1", "bucket", "raw/2025-01-01/a.json",
		"bucket", "curated/2025-01-01/a.json",
	}, records[1])
	assert.Equal(t, "only a prompt", records[2][1])
	assert.Equal(t, "", records[2][0])
}

func TestCSVEncoder_Empty(t *testing.T) {
	var buf bytes.Buffer
	n, err := (&CSVEncoder{}).Encode(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Header still written.
	assert.Contains(t, buf.String(), "timestamp,prompt")
}

func TestJSONLEncoder_SinglePair(t *testing.T) {
	var buf bytes.Buffer
	n, err := (&JSONLEncoder{}).Encode(&buf, []entities.Entry{
		{Prompt: "Q", ApprovedResponse: "A"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t,
		`{"contents":[{"role":"user","parts":[{"text":"Q"}]},{"role":"model","parts":[{"text":"A"}]}]}`+"\n",
		buf.String())
}

func TestJSONLEncoder_EmptyPromptSkipped(t *testing.T) {
	var buf bytes.Buffer
	n, err := (&JSONLEncoder{}).Encode(&buf, []entities.Entry{
		{Prompt: "", ApprovedResponse: "A", AIResponse: "r"},
		{Prompt: "   ", ApprovedResponse: "A"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, buf.String())
}

func TestJSONLEncoder_FallsBackToAIResponse(t *testing.T) {
	var buf bytes.Buffer
	n, err := (&JSONLEncoder{}).Encode(&buf, []entities.Entry{
		{Prompt: "Q", AIResponse: " draft "},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), `{"text":"draft"}`)
}

func TestJSONLEncoder_ApprovedWinsOverDraft(t *testing.T) {
	var buf bytes.Buffer
	_, err := (&JSONLEncoder{}).Encode(&buf, []entities.Entry{
		{Prompt: "Q", AIResponse: "draft", ApprovedResponse: "final"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "final")
	assert.NotContains(t, buf.String(), "draft")
}

func TestJSONLEncoder_PreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	n, err := (&JSONLEncoder{}).Encode(&buf, []entities.Entry{
		{Prompt: "first", AIResponse: "1"},
		{Prompt: "", AIResponse: "skipped"},
		{Prompt: "second", AIResponse: "2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
}

func TestJSONLEncoder_NoHTMLEscaping(t *testing.T) {
	var buf bytes.Buffer
	_, err := (&JSONLEncoder{}).Encode(&buf, []entities.Entry{
		{Prompt: "a < b", AIResponse: "x & y"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a < b")
	assert.Contains(t, buf.String(), "x & y")
}
