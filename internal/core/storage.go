package core

import (
	"context"
	"time"
)

type FactRepository interface {
	Get(ctx context.Context, key string) (*FactEntry, error)
	Save(ctx context.Context, key, answer string, sources []string) error
	IsStale(updated time.Time) bool
}

type SemanticRepository interface {
	Insert(ctx context.Context, rec SemanticRecord) error
	Nearest(ctx context.Context, vector []float32) (*SemanticRecord, float32, error)
	Count(ctx context.Context) (int, error)
}

// SemanticStore is the embedding-aware view over SemanticRepository.
type SemanticStore interface {
	Store(ctx context.Context, text string) error
	Recall(ctx context.Context, query string) (string, bool, error)
}
