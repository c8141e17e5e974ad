package llm

import (
	"context"
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

// Provider is a streaming chat backend that can also enumerate its models.
type Provider interface {
	core.ChatStreamer
	core.ModelLister
}

// NewProvider creates the appropriate Provider based on configuration.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (Provider, error) {
	provider, model := cfg.GetProvider(), cfg.GetModel()

	log.FromCtx(ctx).Info().
		Str("provider", provider).
		Str("model", model).
		Msg("starting llm provider")

	switch provider {
	case "groq":
		return NewGroq(cfg.GroqAPIKey, model), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, model), nil
	case "openrouter":
		return NewOpenRouter(cfg.OpenRouterAPIKey, model), nil
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, model)
	case "custom":
		if cfg.CustomBaseURL == "" {
			return nil, fmt.Errorf("custom provider requires COMPANION_CUSTOM_BASE_URL")
		}
		return NewCustomOpenAI(cfg.CustomBaseURL, cfg.CustomAPIKey, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
