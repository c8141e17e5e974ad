package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.LLMConfig
		wantType any
		wantErr  bool
	}{
		{name: "groq", cfg: &config.LLMConfig{Provider: "groq", Model: "m"}, wantType: &Groq{}},
		{name: "openai", cfg: &config.LLMConfig{Provider: "openai", Model: "m"}, wantType: &OpenAI{}},
		{name: "openrouter", cfg: &config.LLMConfig{Provider: "openrouter", Model: "m"}, wantType: &OpenRouter{}},
		{name: "ollama", cfg: &config.LLMConfig{Provider: "ollama", Model: "m", OllamaBaseURL: "http://localhost:11434"}, wantType: &Ollama{}},
		{name: "custom", cfg: &config.LLMConfig{Provider: "custom", Model: "m", CustomBaseURL: "http://x"}, wantType: &CustomOpenAI{}},
		{name: "custom without url", cfg: &config.LLMConfig{Provider: "custom", Model: "m"}, wantErr: true},
		{name: "unknown", cfg: &config.LLMConfig{Provider: "nope", Model: "m"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, p)
		})
	}
}

func TestDynamicProvider_SetModel(t *testing.T) {
	var lastModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		lastModel = body.Model
		_, _ = w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\ndata: [DONE]\n\n"))
	}))
	defer srv.Close()

	envPath := filepath.Join(t.TempDir(), ".env")
	cfg := &config.LLMConfig{
		Provider:      "custom",
		Model:         "first",
		CustomBaseURL: srv.URL,
		EnvPath:       envPath,
	}

	d, err := NewDynamicProvider(context.Background(), cfg)
	require.NoError(t, err)

	msgs := []core.Message{{Role: core.RoleUser, Content: "hi"}}

	_, err = Complete(context.Background(), d, msgs)
	require.NoError(t, err)
	assert.Equal(t, "first", lastModel)

	require.NoError(t, d.SetModel(context.Background(), "second"))
	assert.Equal(t, "second", d.GetModel())

	_, err = Complete(context.Background(), d, msgs)
	require.NoError(t, err)
	assert.Equal(t, "second", lastModel)

	saved, err := godotenv.Read(envPath)
	require.NoError(t, err)
	assert.Equal(t, "second", saved["COMPANION_MODEL"])
}
