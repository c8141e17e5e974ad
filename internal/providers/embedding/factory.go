package embedding

import (
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
)

// NewEmbedder builds the configured embedder. Remote embedders are token-capped.
func NewEmbedder(cfg *config.EmbeddingConfig) (core.Embedder, error) {
	switch cfg.Provider {
	case "", "hashing":
		return NewHashing(cfg.Dims), nil
	case "ollama":
		o, err := NewOllama(cfg.BaseURL, cfg.Model)
		if err != nil {
			return nil, err
		}
		return NewTruncating(o, cfg.MaxTokens)
	case "openai":
		return NewTruncating(NewOpenAI(cfg.BaseURL, cfg.APIKey, cfg.Model), cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
