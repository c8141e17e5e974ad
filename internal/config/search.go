package config

import (
	"context"
	"time"

	"github.com/I-am-Milind/backend-ai/pkg/log"
	"github.com/caarlos0/env/v11"
)

type SearchConfig struct {
	BingAPIKey   string `env:"BING_API_KEY"`
	BingEndpoint string `env:"COMPANION_BING_ENDPOINT" envDefault:"https://api.bing.microsoft.com/v7.0/search"`
	BingMarket   string `env:"COMPANION_BING_MARKET" envDefault:"en-US"`
	BingCount    int    `env:"COMPANION_BING_COUNT" envDefault:"3"`

	WikipediaEnabled  bool   `env:"COMPANION_WIKIPEDIA_ENABLED" envDefault:"true"`
	WikipediaEndpoint string `env:"COMPANION_WIKIPEDIA_ENDPOINT" envDefault:"https://en.wikipedia.org/api/rest_v1/page/summary/"`

	Timeout time.Duration `env:"COMPANION_SEARCH_TIMEOUT" envDefault:"10s"`

	ProbeAddr    string        `env:"COMPANION_PROBE_ADDR" envDefault:"8.8.8.8:53"`
	ProbeTimeout time.Duration `env:"COMPANION_PROBE_TIMEOUT" envDefault:"2s"`
}

func NewSearchConfig(ctx context.Context) *SearchConfig {
	c := &SearchConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Search config")
	}
	return c
}
