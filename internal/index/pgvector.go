package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is a pgvector-backed index. The embedding column is cosine
// indexed; Search orders by cosine distance.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Close() {
	s.pool.Close()
}

// EnsureSchema creates the knowledge_chunks table if missing. Called by
// the ingestion binary, never by the serving path.
func (s *PGStore) EnsureSchema(ctx context.Context, dimension int) error {
	_, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`)
	if err != nil {
		return fmt.Errorf("create extension: %w", err)
	}
	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS knowledge_chunks (
			id uuid PRIMARY KEY,
			source text NOT NULL,
			chunk_index int NOT NULL,
			content text NOT NULL,
			embedding vector(%d) NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, dimension))
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

// Upsert replaces all chunks for each source present in entries, then
// inserts the new rows. Re-running ingestion is idempotent per source.
func (s *PGStore) Upsert(ctx context.Context, entries []Entry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	seen := make(map[string]bool)
	for _, e := range entries {
		if !seen[e.Source] {
			if _, err := tx.Exec(ctx, `DELETE FROM knowledge_chunks WHERE source = $1`, e.Source); err != nil {
				return fmt.Errorf("delete source %s: %w", e.Source, err)
			}
			seen[e.Source] = true
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO knowledge_chunks (id, source, chunk_index, content, embedding)
			VALUES ($1, $2, $3, $4, $5::vector)`,
			uuid.New(), e.Source, e.ChunkIndex, e.Content, pgVector(e.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert chunk %d: %w", e.ChunkIndex, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PGStore) Search(ctx context.Context, vector []float64, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT content, source, 1 - (embedding <=> $1::vector) AS score
		FROM knowledge_chunks
		ORDER BY embedding <=> $1::vector
		LIMIT $2`,
		pgVector(vector), k,
	)
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Content, &m.Source, &m.Score); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read chunks: %w", err)
	}
	if len(matches) == 0 {
		// Distinguish "never ingested" from "no match" so callers can
		// log the misconfiguration.
		var count int
		if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM knowledge_chunks`).Scan(&count); err == nil && count == 0 {
			return nil, ErrNotReady
		}
	}
	return matches, nil
}

// pgVector formats a float64 slice as a pgvector-compatible string
// literal, e.g. "[0.1,0.2,0.3]", suitable for a parameterized query
// targeting a vector column.
func pgVector(v []float64) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
