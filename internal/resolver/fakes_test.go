package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

var day = 24 * time.Hour

type fakeFacts struct {
	mu      sync.Mutex
	entries map[string]core.FactEntry
	now     time.Time
	window  int
	gets    int
	saveErr error
}

func newFakeFacts(now time.Time) *fakeFacts {
	return &fakeFacts{entries: map[string]core.FactEntry{}, now: now, window: 1}
}

func (f *fakeFacts) Get(ctx context.Context, key string) (*core.FactEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	e, ok := f.entries[key]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeFacts) Save(ctx context.Context, key, answer string, sources []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries[key] = core.FactEntry{Key: key, Answer: answer, Sources: sources, Updated: f.now.Truncate(day)}
	return nil
}

func (f *fakeFacts) IsStale(updated time.Time) bool {
	return updated.Before(f.now.Truncate(day).AddDate(0, 0, -f.window))
}

type fakeSearch struct {
	result core.SearchResult
	calls  int
}

func (f *fakeSearch) Search(ctx context.Context, query string) core.SearchResult {
	f.calls++
	return f.result
}

type fakeProbe struct {
	online bool
}

func (f fakeProbe) Online(ctx context.Context) bool { return f.online }

type fakeSemantic struct {
	docs      []string
	recallErr error
	storeErr  error
}

func (f *fakeSemantic) Store(ctx context.Context, text string) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.docs = append(f.docs, text)
	return nil
}

// Recall only matches exact text so tests control hits precisely.
func (f *fakeSemantic) Recall(ctx context.Context, query string) (string, bool, error) {
	if f.recallErr != nil {
		return "", false, f.recallErr
	}
	for _, d := range f.docs {
		if d == query {
			return d, true, nil
		}
	}
	return "", false, nil
}

var errBoom = errors.New("boom")
