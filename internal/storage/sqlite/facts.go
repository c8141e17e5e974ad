package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/I-am-Milind/backend-ai/internal/core"
)

const dateLayout = "2006-01-02"

type FactRepo struct {
	db     *sql.DB
	window int
	now    func() time.Time
}

func NewFactRepo(db *sql.DB, freshnessDays int) *FactRepo {
	return &FactRepo{
		db:     db,
		window: freshnessDays,
		now:    time.Now,
	}
}

// WithClock replaces the time source used for stamping and staleness.
func (r *FactRepo) WithClock(now func() time.Time) *FactRepo {
	r.now = now
	return r
}

func (r *FactRepo) today() time.Time {
	return dateOf(r.now())
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsStale reports whether updated is strictly older than today minus the freshness window.
func (r *FactRepo) IsStale(updated time.Time) bool {
	return dateOf(updated).Before(r.today().AddDate(0, 0, -r.window))
}

func (r *FactRepo) Get(ctx context.Context, key string) (*core.FactEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT key, answer, sources, updated FROM facts WHERE key = ?`, key)

	entry, err := scanFact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get fact %q: %w", key, err)
	}
	return entry, nil
}

// Save inserts or fully replaces the entry for key, stamped with today's date.
func (r *FactRepo) Save(ctx context.Context, key, answer string, sources []string) error {
	if sources == nil {
		sources = []string{}
	}
	encoded, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("encode sources: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO facts (key, answer, sources, updated) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			answer = excluded.answer,
			sources = excluded.sources,
			updated = excluded.updated`,
		key, answer, string(encoded), r.today().Format(dateLayout),
	)
	if err != nil {
		return fmt.Errorf("save fact %q: %w", key, err)
	}
	return nil
}

// ListStale returns up to limit stale entries, oldest first.
func (r *FactRepo) ListStale(ctx context.Context, limit int) ([]core.FactEntry, error) {
	cutoff := r.today().AddDate(0, 0, -r.window).Format(dateLayout)
	return r.query(ctx,
		`SELECT key, answer, sources, updated FROM facts WHERE updated < ? ORDER BY updated ASC, key ASC LIMIT ?`,
		cutoff, limit)
}

func (r *FactRepo) Recent(ctx context.Context, limit int) ([]core.FactEntry, error) {
	return r.query(ctx,
		`SELECT key, answer, sources, updated FROM facts ORDER BY updated DESC, key ASC LIMIT ?`,
		limit)
}

func (r *FactRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM facts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count facts: %w", err)
	}
	return n, nil
}

func (r *FactRepo) query(ctx context.Context, q string, args ...any) ([]core.FactEntry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query facts: %w", err)
	}
	defer rows.Close()

	var entries []core.FactEntry
	for rows.Next() {
		entry, err := scanFact(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFact(s scanner) (*core.FactEntry, error) {
	var (
		entry   core.FactEntry
		sources string
		updated string
	)
	if err := s.Scan(&entry.Key, &entry.Answer, &sources, &updated); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sources), &entry.Sources); err != nil {
		return nil, fmt.Errorf("malformed sources for %q: %w", entry.Key, err)
	}

	t, err := time.Parse(dateLayout, updated)
	if err != nil {
		return nil, fmt.Errorf("malformed updated date for %q: %w", entry.Key, err)
	}
	entry.Updated = t
	return &entry, nil
}
