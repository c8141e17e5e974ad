package resolver

import (
	"context"
	"sync"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

// Request carries one query through the strategies.
// The fact store lookup is shared so cache and live strategies read the key once.
type Request struct {
	Query string
	Key   string
	Live  bool

	once sync.Once
	fact *core.FactEntry
	err  error
}

func NewRequest(query string) *Request {
	return &Request{
		Query: query,
		Key:   NormalizeKey(query),
		Live:  IsLiveQuery(query),
	}
}

func (r *Request) Fact(ctx context.Context, facts core.FactRepository) (*core.FactEntry, error) {
	r.once.Do(func() {
		r.fact, r.err = facts.Get(ctx, r.Key)
	})
	return r.fact, r.err
}
