package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	facts    *fakeFacts
	search   *fakeSearch
	probe    *fakeProbe
	semantic *fakeSemantic
	pipeline *Pipeline
}

func newFixture(t *testing.T, online bool, names ...string) *pipelineFixture {
	t.Helper()
	if len(names) == 0 {
		names = []string{"semantic", "cache", "live"}
	}

	f := &pipelineFixture{
		facts:    newFakeFacts(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)),
		search:   &fakeSearch{},
		probe:    &fakeProbe{online: online},
		semantic: &fakeSemantic{},
	}

	p, err := Build(names, Deps{
		Semantic: f.semantic,
		Facts:    f.facts,
		Search:   f.search,
		Probe:    f.probe,
	})
	require.NoError(t, err)
	f.pipeline = p
	return f
}

func TestPipeline_LiveQueryOnline(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.search.result = core.SearchResult{
		Answer:  "It is 21 degrees and sunny.",
		Sources: []string{"https://weather.example/a", "https://weather.example/b"},
	}

	env, ok := f.pipeline.Resolve(ctx, "What is the weather today?")
	require.True(t, ok)

	assert.Equal(t, core.ModeLive, env.Mode)
	assert.GreaterOrEqual(t, env.Confidence, 0.9)
	assert.Equal(t, "It is 21 degrees and sunny.", env.Answer)
	assert.Equal(t, 1, f.search.calls)

	stored, err := f.facts.Get(ctx, "what is the weather today")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, env.Answer, stored.Answer)
	assert.Equal(t, []string{"It is 21 degrees and sunny."}, f.semantic.docs)
}

func TestPipeline_RepeatWithinWindowIsCached(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.search.result = core.SearchResult{
		Answer:  "It is 21 degrees and sunny.",
		Sources: []string{"https://weather.example/a"},
	}

	first, ok := f.pipeline.Resolve(ctx, "what is the weather today")
	require.True(t, ok)
	require.Equal(t, core.ModeLive, first.Mode)

	second, ok := f.pipeline.Resolve(ctx, "what is the weather today")
	require.True(t, ok)

	assert.Equal(t, core.ModeCached, second.Mode)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, 0.8, second.Confidence)
	assert.Equal(t, 1, f.search.calls)
}

func TestPipeline_StaleCacheTriggersSearch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.facts.entries["bitcoin price now"] = core.FactEntry{
		Key:     "bitcoin price now",
		Answer:  "old answer",
		Sources: []string{"s"},
		Updated: f.facts.now.Truncate(day).AddDate(0, 0, -2),
	}
	f.search.result = core.SearchResult{Answer: "Bitcoin is at 60k.", Sources: []string{"s1", "s2"}}

	env, ok := f.pipeline.Resolve(ctx, "Bitcoin price now")
	require.True(t, ok)

	assert.Equal(t, core.ModeLive, env.Mode)
	assert.Equal(t, "Bitcoin is at 60k.", env.Answer)
	assert.Equal(t, 0.99, env.Confidence)
	assert.Equal(t, 1, f.facts.gets)
}

func TestPipeline_UnverifiedLiveResult(t *testing.T) {
	tests := []struct {
		name   string
		result core.SearchResult
		want   float64
	}{
		{"nothing found", core.SearchResult{}, 0.4},
		{"hedged answer", core.SearchResult{Answer: "It might be raining", Sources: []string{"s"}}, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t, true)
			f.search.result = tt.result

			env, ok := f.pipeline.Resolve(ctx, "latest news")
			require.True(t, ok)

			assert.Equal(t, core.ModeLive, env.Mode)
			assert.Equal(t, Disclaimer, env.Answer)
			assert.Equal(t, tt.want, env.Confidence)
			assert.Empty(t, f.facts.entries)
			assert.Empty(t, f.semantic.docs)
		})
	}
}

func TestPipeline_PersistenceFailureStillAnswers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)
	f.facts.saveErr = errBoom
	f.semantic.storeErr = errBoom
	f.search.result = core.SearchResult{Answer: "Gold is 2000 USD.", Sources: []string{"s"}}

	env, ok := f.pipeline.Resolve(ctx, "gold price")
	require.True(t, ok)

	assert.Equal(t, core.ModeLive, env.Mode)
	assert.Equal(t, "Gold is 2000 USD.", env.Answer)
}

func TestPipeline_Offline(t *testing.T) {
	t.Run("no cache entry", func(t *testing.T) {
		f := newFixture(t, false)

		env, ok := f.pipeline.Resolve(context.Background(), "what is the weather today")
		require.True(t, ok)

		assert.Equal(t, core.ModeOffline, env.Mode)
		assert.Equal(t, 0.4, env.Confidence)
		assert.Equal(t, Disclaimer, env.Answer)
		assert.Equal(t, 0, f.search.calls)
	})

	t.Run("stale cache entry", func(t *testing.T) {
		f := newFixture(t, false)
		f.facts.entries["what is the weather today"] = core.FactEntry{
			Key:     "what is the weather today",
			Answer:  "It was cloudy.",
			Sources: []string{"s"},
			Updated: f.facts.now.Truncate(day).AddDate(0, 0, -5),
		}

		env, ok := f.pipeline.Resolve(context.Background(), "what is the weather today")
		require.True(t, ok)

		assert.Equal(t, core.ModeOfflineStale, env.Mode)
		assert.Equal(t, 0.6, env.Confidence)
		assert.Equal(t, "It was cloudy.", env.Answer)
		assert.Equal(t, []string{"s"}, env.Sources)
	})
}

func TestPipeline_NonLiveFallsThrough(t *testing.T) {
	f := newFixture(t, true)

	_, ok := f.pipeline.Resolve(context.Background(), "hello, how are you")

	assert.False(t, ok)
	assert.Equal(t, 0, f.search.calls)
	assert.Equal(t, 0, f.facts.gets)
}

func TestPipeline_SemanticPreemptsEverything(t *testing.T) {
	f := newFixture(t, false)
	f.semantic.docs = []string{"what is the weather today"}

	env, ok := f.pipeline.Resolve(context.Background(), "what is the weather today")
	require.True(t, ok)

	assert.Equal(t, core.ModeSemanticMemory, env.Mode)
	assert.Equal(t, 0.75, env.Confidence)
	assert.Empty(t, env.Sources)
	assert.Equal(t, 0, f.facts.gets)
}

func TestPipeline_SemanticErrorIsNoOpinion(t *testing.T) {
	f := newFixture(t, false)
	f.semantic.recallErr = errBoom

	env, ok := f.pipeline.Resolve(context.Background(), "latest news")
	require.True(t, ok)
	assert.Equal(t, core.ModeOffline, env.Mode)
}

func TestPipeline_CustomOrder(t *testing.T) {
	f := newFixture(t, true, "cache", "live")
	f.semantic.docs = []string{"latest news"}
	f.search.result = core.SearchResult{Answer: "Markets rallied.", Sources: []string{"s"}}

	env, ok := f.pipeline.Resolve(context.Background(), "latest news")
	require.True(t, ok)

	assert.Equal(t, core.ModeLive, env.Mode)
	assert.Equal(t, []string{"cache", "live"}, f.pipeline.Names())
}

func TestBuild_Errors(t *testing.T) {
	deps := Deps{Semantic: &fakeSemantic{}, Facts: newFakeFacts(time.Now()), Search: &fakeSearch{}, Probe: fakeProbe{}}

	_, err := Build([]string{"semantic", "oracle"}, deps)
	assert.ErrorContains(t, err, "unknown strategy")

	_, err = Build([]string{"cache", "cache"}, deps)
	assert.ErrorContains(t, err, "duplicate strategy")

	_, err = Build([]string{"live"}, Deps{})
	assert.Error(t, err)

	p, err := Build([]string{" Semantic ", "", "LIVE"}, deps)
	require.NoError(t, err)
	assert.Equal(t, []string{"semantic", "live"}, p.Names())
}
