package search

import (
	"github.com/I-am-Milind/backend-ai/internal/config"
	"github.com/I-am-Milind/backend-ai/internal/core"
)

// NewSearcher assembles the configured backends. Bing comes first so its
// snippets lead the merged answer.
func NewSearcher(cfg *config.SearchConfig) *Aggregator {
	backends := []core.SearchBackend{
		NewBing(cfg.BingEndpoint, cfg.BingAPIKey, cfg.BingMarket, cfg.BingCount),
	}
	if cfg.WikipediaEnabled {
		backends = append(backends, NewWikipedia(cfg.WikipediaEndpoint))
	}
	return NewAggregator(cfg.Timeout, backends...)
}
