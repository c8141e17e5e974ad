package config

import (
	"context"
	"sync"

	menv "github.com/I-am-Milind/backend-ai/pkg/env"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/caarlos0/env/v11"
)

type LLMConfig struct {
	Provider string `env:"COMPANION_LLM_PROVIDER" envDefault:"groq"`
	Model    string `env:"COMPANION_MODEL" envDefault:"llama3-70b-8192"`

	GroqAPIKey       string `env:"GROQ_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	OllamaBaseURL string `env:"COMPANION_OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`

	CustomBaseURL string `env:"COMPANION_CUSTOM_BASE_URL"`
	CustomAPIKey  string `env:"COMPANION_CUSTOM_API_KEY"`

	// EnvPath is where model switches are persisted; empty disables persistence.
	EnvPath string

	mu sync.RWMutex
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	c.EnvPath = GetEnvPath()
	return c
}

func (c *LLMConfig) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

func (c *LLMConfig) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Model
}

// SetModel switches the model and persists it to the runtime .env file.
func (c *LLMConfig) SetModel(model string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.EnvPath != "" {
		if err := menv.Update(c.EnvPath, map[string]string{"COMPANION_MODEL": model}); err != nil {
			return err
		}
	}
	c.Model = model
	return nil
}
