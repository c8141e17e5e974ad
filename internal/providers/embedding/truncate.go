package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

var loaderOnce sync.Once

// Truncating caps the input of a remote embedder to a token budget.
type Truncating struct {
	next      core.Embedder
	maxTokens int
	enc       *tiktoken.Tiktoken
}

func NewTruncating(next core.Embedder, maxTokens int) (*Truncating, error) {
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	return &Truncating{
		next:      next,
		maxTokens: maxTokens,
		enc:       enc,
	}, nil
}

func (t *Truncating) Truncate(text string) string {
	if t.maxTokens <= 0 {
		return text
	}
	tokens := t.enc.Encode(text, nil, nil)
	if len(tokens) <= t.maxTokens {
		return text
	}
	return t.enc.Decode(tokens[:t.maxTokens])
}

func (t *Truncating) CountTokens(text string) int {
	return len(t.enc.Encode(text, nil, nil))
}

func (t *Truncating) Embed(ctx context.Context, text string) ([]float32, error) {
	return t.next.Embed(ctx, t.Truncate(text))
}
