package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/I-am-Milind/backend-ai/internal/providers/embedding"
	"github.com/I-am-Milind/backend-ai/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSemantic(t *testing.T, threshold float32) (*Semantic, *sqlite.SemanticRepo) {
	t.Helper()
	db, err := sqlite.NewDB(context.Background(), filepath.Join(t.TempDir(), "mem.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewSemanticRepo(db)
	return NewSemantic(repo, embedding.NewHashing(256), threshold), repo
}

func TestSemantic_StoreIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem, repo := newSemantic(t, 0.85)
	text := "The Eiffel Tower is 330 metres tall."

	require.NoError(t, mem.Store(ctx, text))
	require.NoError(t, mem.Store(ctx, text))

	got, ok, err := mem.Recall(ctx, text)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, text, got)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSemantic_RecallEmptyIndex(t *testing.T) {
	mem, _ := newSemantic(t, 0.85)

	_, ok, err := mem.Recall(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSemantic_ThresholdRejectsDissimilar(t *testing.T) {
	ctx := context.Background()
	mem, _ := newSemantic(t, 0.85)
	require.NoError(t, mem.Store(ctx, "Bitcoin trades at sixty thousand dollars."))

	_, ok, err := mem.Recall(ctx, "tell me a bedtime story about dragons")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSemantic_ZeroThresholdReturnsNearest(t *testing.T) {
	ctx := context.Background()
	mem, _ := newSemantic(t, -1)
	require.NoError(t, mem.Store(ctx, "Bitcoin trades at sixty thousand dollars."))

	got, ok, err := mem.Recall(ctx, "tell me a bedtime story about dragons")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Bitcoin trades at sixty thousand dollars.", got)
}

func TestSemantic_BlankInput(t *testing.T) {
	ctx := context.Background()
	mem, repo := newSemantic(t, 0.85)

	require.NoError(t, mem.Store(ctx, "   "))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, ok, err := mem.Recall(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("embedder down")
}

func TestSemantic_EmbedderFailure(t *testing.T) {
	_, repo := newSemantic(t, 0.85)
	mem := NewSemantic(repo, failingEmbedder{}, 0.85)

	assert.ErrorContains(t, mem.Store(context.Background(), "text"), "embedder down")
	_, _, err := mem.Recall(context.Background(), "text")
	assert.ErrorContains(t, err, "embedder down")
}

func TestRecordID(t *testing.T) {
	assert.Equal(t, RecordID("same"), RecordID("same"))
	assert.NotEqual(t, RecordID("same"), RecordID("other"))
	assert.Len(t, RecordID("x"), 64)
}
