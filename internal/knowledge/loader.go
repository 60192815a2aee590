// Package knowledge handles the offline side of retrieval: loading the
// plain-text knowledge base, windowing it into chunks and embedding them
// into a vector index. The serving path only ever reads the result.
package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/TechGear-Labs/concierge/internal/index"
)

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	EmbedContent(ctx context.Context, text string) ([]float64, error)
}

// Load reads the knowledge base file.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read knowledge base: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("knowledge base %s is empty", path)
	}
	return string(data), nil
}

// Ingest chunks the text, embeds every chunk and upserts the result into
// the index under the file's base name as source.
func Ingest(ctx context.Context, chunker *Chunker, embedder Embedder, idx index.Index, path, text string, logger *slog.Logger) (int, error) {
	source := filepath.Base(path)
	chunks := chunker.Split(source, text)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no chunks produced from %s", path)
	}

	entries := make([]index.Entry, 0, len(chunks))
	for _, ch := range chunks {
		vec, err := embedder.EmbedContent(ctx, ch.Text)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %d: %w", ch.Index, err)
		}
		entries = append(entries, index.Entry{
			Source:     ch.Source,
			ChunkIndex: ch.Index,
			Content:    ch.Text,
			Embedding:  vec,
		})
	}

	if err := idx.Upsert(ctx, entries); err != nil {
		return 0, fmt.Errorf("upsert chunks: %w", err)
	}

	logger.Info("knowledge base ingested", "source", source, "chunks", len(entries))
	return len(entries), nil
}
