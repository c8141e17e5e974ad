package search

import (
	"context"
	"strings"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
	"golang.org/x/sync/errgroup"
)

// Aggregator queries every backend concurrently and merges their snippets
// in backend order. A failing backend contributes nothing.
type Aggregator struct {
	backends []core.SearchBackend
	timeout  time.Duration
}

func NewAggregator(timeout time.Duration, backends ...core.SearchBackend) *Aggregator {
	return &Aggregator{
		backends: backends,
		timeout:  timeout,
	}
}

func (a *Aggregator) Search(ctx context.Context, query string) core.SearchResult {
	logger := log.FromCtx(ctx)
	results := make([][]core.Snippet, len(a.backends))

	var g errgroup.Group
	for i, b := range a.backends {
		g.Go(func() error {
			bctx := ctx
			if a.timeout > 0 {
				var cancel context.CancelFunc
				bctx, cancel = context.WithTimeout(ctx, a.timeout)
				defer cancel()
			}

			snippets, err := b.Search(bctx, query)
			if err != nil {
				logger.Warn().Err(err).Str("backend", b.Name()).Msg("search backend failed")
				return nil
			}
			results[i] = snippets
			return nil
		})
	}
	_ = g.Wait()

	return merge(results)
}

func merge(results [][]core.Snippet) core.SearchResult {
	var (
		texts   []string
		sources []string
		seen    = make(map[string]struct{})
	)

	for _, snippets := range results {
		for _, s := range snippets {
			if text := strings.TrimSpace(s.Text); text != "" {
				texts = append(texts, text)
			}
			if s.URL == "" {
				continue
			}
			if _, ok := seen[s.URL]; ok {
				continue
			}
			seen[s.URL] = struct{}{}
			sources = append(sources, s.URL)
		}
	}

	return core.SearchResult{
		Answer:  strings.Join(texts, " "),
		Sources: sources,
	}
}
