package knowledge

import "strings"

const (
	defaultChunkSize    = 300
	defaultChunkOverlap = 50
)

// Chunk is one bounded span of the knowledge base text.
type Chunk struct {
	Source string
	Index  int
	Text   string
}

// Chunker splits text into fixed-size windows with a fixed overlap
// against the previous window, preferring to cut at paragraph, line and
// word boundaries.
type Chunker struct {
	size    int
	overlap int
}

func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defaultChunkOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

// Split windows the text into chunks of at most the configured size.
// Consecutive chunks share the configured overlap so that spans crossing
// a window boundary stay retrievable.
func (c *Chunker) Split(source, text string) []Chunk {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var chunks []Chunk
	start := 0
	idx := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = start + c.cut(runes[start:end])
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, Chunk{Source: source, Index: idx, Text: piece})
			idx++
		}

		if end == len(runes) {
			break
		}
		start = end - c.overlap
	}
	return chunks
}

// cut picks the split position inside a full window: the last paragraph
// break if any, else the last line break, else the last space. Falls
// back to a hard cut when no boundary lands past the overlap region
// (which would stall progress). All positions are rune offsets; the
// byte offset from LastIndex is converted before comparing.
func (c *Chunker) cut(window []rune) int {
	s := string(window)
	for _, sep := range []string{"\n\n", "\n", " "} {
		pos := strings.LastIndex(s, sep)
		if pos < 0 {
			continue
		}
		if runePos := len([]rune(s[:pos+len(sep)])); runePos > c.overlap {
			return runePos
		}
	}
	return len(window)
}
