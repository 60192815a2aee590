package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Memory is a brute-force cosine-similarity index. Fine for a knowledge
// base of a few hundred chunks; not meant for anything larger.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Upsert(ctx context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		if len(m.entries) > 0 && len(e.Embedding) != len(m.entries[0].Embedding) {
			return fmt.Errorf("embedding dimension mismatch: got %d, want %d",
				len(e.Embedding), len(m.entries[0].Embedding))
		}
		m.entries = append(m.entries, e)
	}
	return nil
}

func (m *Memory) Search(ctx context.Context, vector []float64, k int) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.entries) == 0 {
		return nil, ErrNotReady
	}
	if k <= 0 {
		return nil, nil
	}
	if len(vector) != len(m.entries[0].Embedding) {
		return nil, fmt.Errorf("query dimension mismatch: got %d, want %d",
			len(vector), len(m.entries[0].Embedding))
	}

	matches := make([]Match, 0, len(m.entries))
	for _, e := range m.entries {
		matches = append(matches, Match{
			Content: e.Content,
			Source:  e.Source,
			Score:   cosine(vector, e.Embedding),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
