// Package index provides vector similarity search over knowledge chunks.
// Two implementations exist: a Postgres/pgvector store for deployments
// and an in-memory brute-force store for local runs and tests. The index
// is built offline and treated as read-only at request time.
package index

import (
	"context"
	"errors"
)

// ErrNotReady is returned by Search when the index holds no chunks.
var ErrNotReady = errors.New("index: no chunks loaded")

// Entry is one embedded knowledge chunk to be stored.
type Entry struct {
	Source     string
	ChunkIndex int
	Content    string
	Embedding  []float64
}

// Match is one nearest-neighbour hit, highest similarity first.
type Match struct {
	Content string
	Source  string
	Score   float64
}

// Index stores embedded chunks and answers top-k similarity queries.
type Index interface {
	Upsert(ctx context.Context, entries []Entry) error
	Search(ctx context.Context, vector []float64, k int) ([]Match, error)
}
