// Package retriever adapts the embedder and the vector index into a
// single text-in, snippets-out lookup.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TechGear-Labs/concierge/internal/index"
)

// ErrRetrieval marks any failure of the embedding or index call. Callers
// branch on it with errors.Is and degrade instead of failing the request.
var ErrRetrieval = errors.New("retrieval failed")

// Embedder turns query text into a vector.
type Embedder interface {
	EmbedContent(ctx context.Context, text string) ([]float64, error)
}

// Searcher answers top-k similarity queries.
type Searcher interface {
	Search(ctx context.Context, vector []float64, k int) ([]index.Match, error)
}

type Retriever struct {
	embedder Embedder
	searcher Searcher
	logger   *slog.Logger
}

func New(embedder Embedder, searcher Searcher, logger *slog.Logger) *Retriever {
	return &Retriever{embedder: embedder, searcher: searcher, logger: logger}
}

// Retrieve returns at most k snippets in descending similarity order.
// No re-ranking, no thresholding: the index's ordering is the answer.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]string, error) {
	vec, err := r.embedder.EmbedContent(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", ErrRetrieval, err)
	}

	matches, err := r.searcher.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("%w: search index: %v", ErrRetrieval, err)
	}

	snippets := make([]string, 0, len(matches))
	for _, m := range matches {
		snippets = append(snippets, m.Content)
	}

	r.logger.Debug("context retrieved", "query_len", len(query), "snippets", len(snippets))
	return snippets, nil
}
