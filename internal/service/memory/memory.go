package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/I-am-Milind/backend-ai/internal/core"
	"github.com/I-am-Milind/backend-ai/pkg/log"
)

const recordDomain = "semantic/v1"

// Semantic is the embedding-indexed memory of verified answers and persona texts.
type Semantic struct {
	repo      core.SemanticRepository
	embedder  core.Embedder
	threshold float32
}

func NewSemantic(repo core.SemanticRepository, embedder core.Embedder, threshold float32) *Semantic {
	return &Semantic{
		repo:      repo,
		embedder:  embedder,
		threshold: threshold,
	}
}

// RecordID derives a content hash so identical documents share one record.
func RecordID(text string) string {
	h := sha256.New()
	h.Write([]byte(recordDomain))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Semantic) Store(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed document: %w", err)
	}

	return s.repo.Insert(ctx, core.SemanticRecord{
		ID:        RecordID(text),
		Embedding: vec,
		Document:  text,
	})
}

// Recall returns the nearest stored document when its similarity reaches the threshold.
func (s *Semantic) Recall(ctx context.Context, query string) (string, bool, error) {
	if strings.TrimSpace(query) == "" {
		return "", false, nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return "", false, fmt.Errorf("embed query: %w", err)
	}

	rec, score, err := s.repo.Nearest(ctx, vec)
	if err != nil {
		return "", false, err
	}
	if rec == nil {
		return "", false, nil
	}

	if score < s.threshold {
		log.FromCtx(ctx).Debug().
			Float32("score", score).
			Float32("threshold", s.threshold).
			Msg("nearest semantic record below threshold")
		return "", false, nil
	}
	return rec.Document, true, nil
}
