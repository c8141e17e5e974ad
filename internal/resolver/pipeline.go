package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

// Pipeline consults its strategies in order; the first envelope wins.
type Pipeline struct {
	strategies []Strategy
}

func NewPipeline(strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies}
}

// Deps are the collaborators the built-in strategies need.
type Deps struct {
	Semantic core.SemanticStore
	Facts    core.FactRepository
	Search   core.Searcher
	Probe    core.ConnectivityProbe
}

// Build assembles a pipeline from strategy names such as "semantic", "cache", "live".
func Build(names []string, deps Deps) (*Pipeline, error) {
	strategies := make([]Strategy, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate strategy: %s", name)
		}
		seen[name] = true

		switch name {
		case "semantic":
			if deps.Semantic == nil {
				return nil, fmt.Errorf("strategy %s: semantic memory not configured", name)
			}
			strategies = append(strategies, NewSemanticStrategy(deps.Semantic))
		case "cache":
			if deps.Facts == nil {
				return nil, fmt.Errorf("strategy %s: fact store not configured", name)
			}
			strategies = append(strategies, NewCacheStrategy(deps.Facts))
		case "live":
			if deps.Facts == nil || deps.Search == nil || deps.Probe == nil {
				return nil, fmt.Errorf("strategy %s: fact store, search and probe are required", name)
			}
			strategies = append(strategies, NewLiveStrategy(deps.Facts, deps.Search, deps.Probe, deps.Semantic))
		default:
			return nil, fmt.Errorf("unknown strategy: %s", name)
		}
	}

	return NewPipeline(strategies...), nil
}

// Resolve returns the terminal envelope for query. The boolean is false when
// no strategy had an opinion and the caller should fall back to generation.
func (p *Pipeline) Resolve(ctx context.Context, query string) (core.Envelope, bool) {
	req := NewRequest(query)
	logger := log.FromCtx(ctx)

	for _, s := range p.strategies {
		env := s.Resolve(ctx, req)
		if env == nil {
			continue
		}
		logger.Debug().
			Str("strategy", s.Name()).
			Str("key", req.Key).
			Str("mode", string(env.Mode)).
			Float64("confidence", env.Confidence).
			Msg("query resolved")
		return *env, true
	}

	logger.Debug().Str("key", req.Key).Bool("live", req.Live).Msg("no strategy resolved query")
	return core.Envelope{}, false
}

func (p *Pipeline) Names() []string {
	names := make([]string, len(p.strategies))
	for i, s := range p.strategies {
		names[i] = s.Name()
	}
	return names
}
