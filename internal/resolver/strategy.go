package resolver

import (
	"context"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

const (
	Disclaimer = "I don't have verified, up-to-date information on that right now."

	semanticConfidence     = 0.75
	offlineStaleConfidence = 0.6
	offlineConfidence      = 0.4
)

// Strategy returns a terminal envelope, or nil when it has no opinion on the request.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, req *Request) *core.Envelope
}

type SemanticStrategy struct {
	memory core.SemanticStore
}

func NewSemanticStrategy(memory core.SemanticStore) *SemanticStrategy {
	return &SemanticStrategy{memory: memory}
}

func (s *SemanticStrategy) Name() string { return "semantic" }

func (s *SemanticStrategy) Resolve(ctx context.Context, req *Request) *core.Envelope {
	doc, ok, err := s.memory.Recall(ctx, req.Query)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("semantic recall failed")
		return nil
	}
	if !ok {
		return nil
	}
	return &core.Envelope{
		Answer:     doc,
		Confidence: semanticConfidence,
		Mode:       core.ModeSemanticMemory,
	}
}

type CacheStrategy struct {
	facts core.FactRepository
}

func NewCacheStrategy(facts core.FactRepository) *CacheStrategy {
	return &CacheStrategy{facts: facts}
}

func (s *CacheStrategy) Name() string { return "cache" }

func (s *CacheStrategy) Resolve(ctx context.Context, req *Request) *core.Envelope {
	if !req.Live {
		return nil
	}

	fact, err := req.Fact(ctx, s.facts)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("key", req.Key).Msg("fact lookup failed")
		return nil
	}
	if fact == nil || s.facts.IsStale(fact.Updated) {
		return nil
	}

	verified := Verify(fact.Answer, fact.Sources)
	return &core.Envelope{
		Answer:     fact.Answer,
		Sources:    fact.Sources,
		Confidence: Score(fact.Sources, verified),
		Mode:       core.ModeCached,
	}
}

// LiveStrategy searches when online and falls back to whatever is cached when not.
type LiveStrategy struct {
	facts    core.FactRepository
	search   core.Searcher
	probe    core.ConnectivityProbe
	semantic core.SemanticStore
}

func NewLiveStrategy(
	facts core.FactRepository,
	search core.Searcher,
	probe core.ConnectivityProbe,
	semantic core.SemanticStore,
) *LiveStrategy {
	return &LiveStrategy{
		facts:    facts,
		search:   search,
		probe:    probe,
		semantic: semantic,
	}
}

func (s *LiveStrategy) Name() string { return "live" }

func (s *LiveStrategy) Resolve(ctx context.Context, req *Request) *core.Envelope {
	if !req.Live {
		return nil
	}
	if s.probe.Online(ctx) {
		return s.online(ctx, req)
	}
	return s.offline(ctx, req)
}

func (s *LiveStrategy) online(ctx context.Context, req *Request) *core.Envelope {
	logger := log.FromCtx(ctx)

	res := s.search.Search(ctx, req.Query)
	verified := Verify(res.Answer, res.Sources)
	confidence := Score(res.Sources, verified)

	logger.Debug().
		Str("key", req.Key).
		Int("sources", len(res.Sources)).
		Bool("verified", verified).
		Msg("live search finished")

	if !verified {
		return &core.Envelope{
			Answer:     Disclaimer,
			Confidence: confidence,
			Mode:       core.ModeLive,
		}
	}

	if err := s.facts.Save(ctx, req.Key, res.Answer, res.Sources); err != nil {
		logger.Error().Err(err).Str("key", req.Key).Msg("failed to persist fact")
	}
	if s.semantic != nil {
		if err := s.semantic.Store(ctx, res.Answer); err != nil {
			logger.Error().Err(err).Str("key", req.Key).Msg("failed to store semantic record")
		}
	}

	return &core.Envelope{
		Answer:     res.Answer,
		Sources:    res.Sources,
		Confidence: confidence,
		Mode:       core.ModeLive,
	}
}

func (s *LiveStrategy) offline(ctx context.Context, req *Request) *core.Envelope {
	fact, err := req.Fact(ctx, s.facts)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("key", req.Key).Msg("fact lookup failed")
	}
	if fact != nil {
		return &core.Envelope{
			Answer:     fact.Answer,
			Sources:    fact.Sources,
			Confidence: offlineStaleConfidence,
			Mode:       core.ModeOfflineStale,
		}
	}
	return &core.Envelope{
		Answer:     Disclaimer,
		Confidence: offlineConfidence,
		Mode:       core.ModeOffline,
	}
}
