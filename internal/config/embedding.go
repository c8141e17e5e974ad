package config

import (
	"context"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/caarlos0/env/v11"
)

type EmbeddingConfig struct {
	// hashing, ollama or openai
	Provider  string `env:"COMPANION_EMBEDDING_PROVIDER" envDefault:"hashing"`
	Model     string `env:"COMPANION_EMBEDDING_MODEL" envDefault:"nomic-embed-text"`
	BaseURL   string `env:"COMPANION_EMBEDDING_BASE_URL"`
	APIKey    string `env:"COMPANION_EMBEDDING_API_KEY"`
	MaxTokens int    `env:"COMPANION_EMBEDDING_MAX_TOKENS" envDefault:"512"`
	Dims      int    `env:"COMPANION_EMBEDDING_DIMS" envDefault:"256"`
}

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	c := &EmbeddingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	return c
}
