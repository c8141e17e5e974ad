package config

import (
	"context"
	"time"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/caarlos0/env/v11"
)

type ResolverConfig struct {
	// Ordered strategy names consulted before the generative fallback.
	Strategies        []string `env:"COMPANION_STRATEGIES" envDefault:"semantic,cache,live" envSeparator:","`
	FreshnessDays     int      `env:"COMPANION_FRESHNESS_DAYS" envDefault:"1"`
	SemanticThreshold float32  `env:"COMPANION_SEMANTIC_THRESHOLD" envDefault:"0.85"`

	RefreshInterval time.Duration `env:"COMPANION_REFRESH_INTERVAL" envDefault:"1h"`
	RefreshBatch    int           `env:"COMPANION_REFRESH_BATCH" envDefault:"20"`
}

func NewResolverConfig(ctx context.Context) *ResolverConfig {
	c := &ResolverConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Resolver config")
	}
	return c
}
