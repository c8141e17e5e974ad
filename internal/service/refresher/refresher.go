package refresher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/internal/resolver"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

type StaleFacts interface {
	ListStale(ctx context.Context, limit int) ([]core.FactEntry, error)
	Save(ctx context.Context, key, answer string, sources []string) error
}

// Refresher periodically re-resolves stale cached facts so live queries
// can be answered from the cache while offline.
type Refresher struct {
	facts    StaleFacts
	search   core.Searcher
	probe    core.ConnectivityProbe
	memory   core.SemanticStore
	interval time.Duration
	batch    int

	stop     chan struct{}
	stopOnce sync.Once
}

func NewRefresher(
	facts StaleFacts,
	search core.Searcher,
	probe core.ConnectivityProbe,
	memory core.SemanticStore,
	interval time.Duration,
	batch int,
) *Refresher {
	return &Refresher{
		facts:    facts,
		search:   search,
		probe:    probe,
		memory:   memory,
		interval: interval,
		batch:    batch,
		stop:     make(chan struct{}),
	}
}

func (r *Refresher) Start(ctx context.Context) error {
	ctx = log.WithComponent(ctx, "refresher")
	logger := log.FromCtx(ctx)

	if r.interval <= 0 {
		logger.Info().Msg("fact refresh disabled")
		return nil
	}

	logger.Info().Dur("interval", r.interval).Int("batch", r.batch).Msg("fact refresher started")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.stop:
			return nil
		case <-ticker.C:
			if _, err := r.RefreshOnce(ctx); err != nil {
				logger.Error().Err(err).Msg("fact refresh failed")
			}
		}
	}
}

func (r *Refresher) Shutdown(_ context.Context) error {
	r.stopOnce.Do(func() { close(r.stop) })
	return nil
}

// RefreshOnce re-searches up to one batch of stale facts, oldest first, and
// overwrites those whose new answer verifies. It returns the number refreshed.
func (r *Refresher) RefreshOnce(ctx context.Context) (int, error) {
	logger := log.FromCtx(ctx)

	if !r.probe.Online(ctx) {
		logger.Debug().Msg("offline, skipping fact refresh")
		return 0, nil
	}

	entries, err := r.facts.ListStale(ctx, r.batch)
	if err != nil {
		return 0, fmt.Errorf("list stale facts: %w", err)
	}

	refreshed := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		res := r.search.Search(ctx, entry.Key)
		if strings.TrimSpace(res.Answer) == "" || !resolver.Verify(res.Answer, res.Sources) {
			logger.Debug().Str("key", entry.Key).Msg("refresh result not verified")
			continue
		}

		if err := r.facts.Save(ctx, entry.Key, res.Answer, res.Sources); err != nil {
			logger.Error().Err(err).Str("key", entry.Key).Msg("failed to save refreshed fact")
			continue
		}
		if r.memory != nil {
			if err := r.memory.Store(ctx, res.Answer); err != nil {
				logger.Warn().Err(err).Str("key", entry.Key).Msg("failed to store refreshed fact")
			}
		}
		refreshed++
	}

	logger.Info().Int("stale", len(entries)).Int("refreshed", refreshed).Msg("fact refresh finished")
	return refreshed, nil
}
