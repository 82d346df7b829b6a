// Package entities contains core domain data structures.
package entities

import "strings"

// Origin records where an Entry was loaded from. It is bookkeeping only and
// never part of the persisted record.
type Origin struct {
	Bucket string
	Key    string
}

// Entry is a single feedback record, raw or curated. Once written under a key
// it is immutable; curation always produces a new record at a new key.
// Optional fields use omitempty so absent fields stay absent on round-trip.
type Entry struct {
	Timestamp        string `json:"timestamp,omitempty"`
	Prompt           string `json:"prompt,omitempty"`
	AIResponse       string `json:"ai_response,omitempty"`
	ApprovedResponse string `json:"approved_response,omitempty"`
	ApprovedBy       string `json:"approved_by,omitempty"`
	ApprovedAt       string `json:"approved_at,omitempty"`
	ReviewNotes      string `json:"review_notes,omitempty"`
	UsedModel        string `json:"used_model,omitempty"`
	SourceRawBucket  string `json:"source_raw_bucket,omitempty"`
	SourceRawKey     string `json:"source_raw_key,omitempty"`

	Origin Origin `json:"-"`
}

// ContainsKeyword reports whether the keyword appears (case-insensitive) in
// the prompt, AI response, approved response, or review notes. An empty
// keyword matches every entry.
func (e Entry) ContainsKeyword(keyword string) bool {
	if keyword == "" {
		return true
	}
	kw := strings.ToLower(keyword)
	for _, field := range []string{e.Prompt, e.AIResponse, e.ApprovedResponse, e.ReviewNotes} {
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}

// TrainingOutput returns the text a training pair should carry: the approved
// response when present, the raw AI response otherwise. Empty means the entry
// is not usable as a training pair.
func (e Entry) TrainingOutput() string {
	if out := strings.TrimSpace(e.ApprovedResponse); out != "" {
		return out
	}
	return strings.TrimSpace(e.AIResponse)
}

// Label renders a short one-line summary for listings: the timestamp (or the
// key's partition date) followed by the start of the prompt.
func (e Entry) Label() string {
	const maxPrompt = 36

	date := e.Timestamp
	if date == "" {
		// Fall back to the key's partition date.
		if parts := strings.Split(e.Origin.Key, "/"); len(parts) >= 3 {
			date = parts[1]
		}
	}
	prompt := strings.ReplaceAll(e.Prompt, "\n", " ")
	// Truncate on runes so multi-byte prompts never split mid-character.
	if runes := []rune(prompt); len(runes) > maxPrompt {
		prompt = string(runes[:maxPrompt]) + "…"
	}
	return date + " | " + prompt
}
