package azure

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewOpenAIClient(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		endpoint   string
		apiKey     string
		deployment string
		wantErr    bool
	}{
		{
			name:       "valid configuration",
			endpoint:   "https://test.openai.azure.com/",
			apiKey:     "test-key",
			deployment: "gpt-4o",
			wantErr:    false,
		},
		{
			name:       "missing endpoint",
			endpoint:   "",
			apiKey:     "test-key",
			deployment: "gpt-4o",
			wantErr:    true,
		},
		{
			name:       "missing api key",
			endpoint:   "https://test.openai.azure.com/",
			apiKey:     "",
			deployment: "gpt-4o",
			wantErr:    true,
		},
		{
			name:       "missing deployment",
			endpoint:   "https://test.openai.azure.com/",
			apiKey:     "test-key",
			deployment: "",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewOpenAIClient(tt.endpoint, tt.apiKey, tt.deployment, logger)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if client == nil {
				t.Error("expected client, got nil")
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	client := &OpenAIClient{logger: zap.NewNop()}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"auth error", errString("authentication failed"), false},
		{"unauthorized", errString("401 unauthorized"), false},
		{"bad request", errString("400 bad request"), false},
		{"rate limit", errString("429 too many requests"), true},
		{"timeout", errString("request timeout"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.isRetryable(t.Context(), tt.err)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }
