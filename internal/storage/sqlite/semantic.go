package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

// SemanticRepo keeps embedded documents and ranks them by cosine similarity in Go.
type SemanticRepo struct {
	db *sql.DB
}

func NewSemanticRepo(db *sql.DB) *SemanticRepo {
	return &SemanticRepo{db: db}
}

// Insert is a no-op when a record with the same id already exists.
func (r *SemanticRepo) Insert(ctx context.Context, rec core.SemanticRecord) error {
	blob, err := serializeVector(rec.Embedding)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO semantic_records (id, embedding, dims, document) VALUES (?, ?, ?, ?)`,
		rec.ID, blob, len(rec.Embedding), rec.Document,
	)
	if err != nil {
		return fmt.Errorf("insert semantic record: %w", err)
	}
	return nil
}

// Nearest returns the most similar record with matching dimensions, or nil when none exists.
func (r *SemanticRepo) Nearest(ctx context.Context, vector []float32) (*core.SemanticRecord, float32, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, embedding, document, created_at FROM semantic_records WHERE dims = ?`,
		len(vector))
	if err != nil {
		return nil, 0, fmt.Errorf("query semantic records: %w", err)
	}
	defer rows.Close()

	var (
		best      *core.SemanticRecord
		bestScore float32 = -2
	)
	for rows.Next() {
		var (
			rec  core.SemanticRecord
			blob []byte
		)
		if err := rows.Scan(&rec.ID, &blob, &rec.Document, &rec.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan semantic record: %w", err)
		}
		vec, err := deserializeVector(blob)
		if err != nil {
			return nil, 0, err
		}

		score := cosineSimilarity(vector, vec)
		if score > bestScore {
			rec.Embedding = vec
			best = &rec
			bestScore = score
		}
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if best == nil {
		return nil, 0, nil
	}
	return best, bestScore, nil
}

func (r *SemanticRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM semantic_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count semantic records: %w", err)
	}
	return n, nil
}
