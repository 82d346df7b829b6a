package mocks

import (
	"context"

	"github.com/ersonp/feedback-curator/internal/domain/ports"
)

// DraftGenerator is a mock implementation of ports.DraftGenerator.
type DraftGenerator struct {
	// Generate return values
	Draft       *ports.Draft
	GenerateErr error

	// ModelID is returned by Model.
	ModelID string

	// Prompts records every prompt passed to Generate.
	Prompts []string
}

// Generate returns the configured draft or error.
func (m *DraftGenerator) Generate(ctx context.Context, prompt string) (*ports.Draft, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.GenerateErr != nil {
		return m.Draft, m.GenerateErr
	}
	return m.Draft, nil
}

// Model returns the configured model identifier.
func (m *DraftGenerator) Model() string {
	if m.ModelID == "" {
		return "mock-model"
	}
	return m.ModelID
}
