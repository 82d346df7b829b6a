package openai

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/feedback-curator/internal/infrastructure/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.ModelConfig
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			cfg: config.ModelConfig{
				APIKey: "test-key",
			},
			wantErr: false,
		},
		{
			name: "valid config with model",
			cfg: config.ModelConfig{
				APIKey:   "test-key",
				Endpoint: "gpt-4o",
			},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     config.ModelConfig{},
			wantErr: true,
			errMsg:  "API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestClient_Model(t *testing.T) {
	client, err := NewClient(config.ModelConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.Equal(t, defaultModel, client.Model())

	client, err = NewClient(config.ModelConfig{APIKey: "test-key", Endpoint: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", client.Model())
}

func TestClient_Request(t *testing.T) {
	client, err := NewClient(config.ModelConfig{APIKey: "test-key", Endpoint: "gpt-4o"})
	require.NoError(t, err)

	req := client.request("a prompt")
	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
	assert.Equal(t, "a prompt", req.Messages[0].Content)
	assert.InDelta(t, 0.7, req.Temperature, 0.001)
	assert.Equal(t, 1024, req.MaxTokens)
}
