package chunker

import (
	"fmt"
	"strings"

	"coursekit/internal/domain"
)

// TokenChunker splits normalized text into windows of size words that
// advance by size-overlap words.
type TokenChunker struct {
	size    int
	overlap int
}

// NewTokenChunker rejects configurations that would never advance.
func NewTokenChunker(size, overlap int) (*TokenChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrMalformedConfiguration, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must not be negative, got %d", domain.ErrMalformedConfiguration, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap (%d) must be smaller than chunk size (%d)",
			domain.ErrMalformedConfiguration, overlap, size)
	}
	return &TokenChunker{size: size, overlap: overlap}, nil
}

func (c *TokenChunker) Size() int    { return c.size }
func (c *TokenChunker) Overlap() int { return c.overlap }

// Chunk splits text into overlapping word windows. The last window may be
// shorter than size; once a window reaches the end of the text no further
// windows are produced, so the tail is never emitted twice.
func (c *TokenChunker) Chunk(text string) []string {
	windows := c.Windows(text)
	if len(windows) == 0 {
		return nil
	}
	chunks := make([]string, len(windows))
	for i, w := range windows {
		chunks[i] = w.Text
	}
	return chunks
}

// Windows is Chunk with the word offsets of every window in text.
func (c *TokenChunker) Windows(text string) []domain.Window {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.size - c.overlap
	var windows []domain.Window

	for start := 0; start < len(words); start += step {
		end := start + c.size
		if end > len(words) {
			end = len(words)
		}
		windows = append(windows, domain.Window{
			Text:  strings.Join(words[start:end], " "),
			Start: start,
			End:   end,
		})
		if end == len(words) {
			break
		}
	}

	return windows
}

// Chunk is a convenience wrapper around NewTokenChunker and Chunk.
func Chunk(text string, size, overlap int) ([]string, error) {
	c, err := NewTokenChunker(size, overlap)
	if err != nil {
		return nil, err
	}
	return c.Chunk(text), nil
}
