package index

import (
	"log/slog"
	"math"
	"sort"
	"sync"

	"coursekit/internal/adapter/analyzer"
	"coursekit/internal/domain"
	"coursekit/internal/logger"
)

// LexicalIndex holds the chunks of one document together with their term
// counts. Chunks are append-only; readers may search concurrently while Add
// takes the write lock.
type LexicalIndex struct {
	mu         sync.RWMutex
	chunks     []domain.Chunk
	vocab      map[string]int
	totalTerms int

	tokenizer       *analyzer.Tokenizer
	lengthNormalize bool
	log             *slog.Logger
}

type Option func(*LexicalIndex)

// WithLengthNormalization divides each chunk's raw score by the square root
// of its term count so long chunks are not systematically favored.
func WithLengthNormalization(enabled bool) Option {
	return func(ix *LexicalIndex) {
		ix.lengthNormalize = enabled
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(ix *LexicalIndex) {
		ix.log = l
	}
}

func New(tokenizer *analyzer.Tokenizer, opts ...Option) *LexicalIndex {
	ix := &LexicalIndex{
		vocab:     make(map[string]int),
		tokenizer: tokenizer,
		log:       logger.WithComponent("index"),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// Build creates an index over texts in order.
func Build(texts []string, tokenizer *analyzer.Tokenizer, opts ...Option) *LexicalIndex {
	ix := New(tokenizer, opts...)
	ix.Add(texts)
	return ix
}

// Add appends chunks after the existing ones and returns the new chunks.
// Term counts are computed once here and never recomputed.
func (ix *LexicalIndex) Add(texts []string) []domain.Chunk {
	if len(texts) == 0 {
		return nil
	}

	// tokenize outside the lock
	profiles := make([]map[string]int, len(texts))
	for i, text := range texts {
		profiles[i] = ix.tokenizer.Counts(text)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	added := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		chunk := domain.Chunk{
			ID:         len(ix.chunks),
			Text:       text,
			TermCounts: profiles[i],
		}
		for term, tf := range chunk.TermCounts {
			ix.vocab[term]++
			ix.totalTerms += tf
		}
		ix.chunks = append(ix.chunks, chunk)
		added = append(added, chunk)
	}

	ix.log.Debug("chunks indexed", "added", len(added), "total", len(ix.chunks), "vocabulary", len(ix.vocab))
	return added
}

func (ix *LexicalIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Chunks returns a snapshot of the indexed chunks in insertion order.
func (ix *LexicalIndex) Chunks() []domain.Chunk {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]domain.Chunk, len(ix.chunks))
	copy(out, ix.chunks)
	return out
}

// Head returns up to n chunks from the start of the document.
func (ix *LexicalIndex) Head(n int) []domain.Chunk {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if n > len(ix.chunks) {
		n = len(ix.chunks)
	}
	if n <= 0 {
		return nil
	}
	out := make([]domain.Chunk, n)
	copy(out, ix.chunks[:n])
	return out
}

func (ix *LexicalIndex) Stats() domain.Stats {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return domain.Stats{
		TotalChunks: len(ix.chunks),
		TotalTerms:  ix.totalTerms,
		UniqueTerms: len(ix.vocab),
	}
}

func (ix *LexicalIndex) Tokenizer() *analyzer.Tokenizer {
	return ix.tokenizer
}

// Search scores every chunk by the summed counts of the query terms and
// returns the k best, ties kept in insertion order. When no chunk shares a
// term with the query the first k chunks are returned with Relevant unset.
func (ix *LexicalIndex) Search(query string, k int) (domain.Retrieval, error) {
	if k <= 0 {
		return domain.Retrieval{}, nil
	}

	queryTerms := ix.tokenizer.Terms(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	results := make([]domain.ScoredChunk, len(ix.chunks))
	relevant := false
	for i, chunk := range ix.chunks {
		score := ix.score(chunk, queryTerms)
		if score > 0 {
			relevant = true
		}
		results[i] = domain.ScoredChunk{Chunk: chunk, Score: score}
	}

	if relevant {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	} else {
		ix.log.Debug("no chunk matched query terms", "query", query, "terms", len(queryTerms), "chunks", len(ix.chunks))
	}
	if len(results) > k {
		results = results[:k]
	}

	return domain.Retrieval{Chunks: results, Relevant: relevant}, nil
}

// score counts repeated query terms once per occurrence in the query, which
// matches summing over the query's term sequence.
func (ix *LexicalIndex) score(chunk domain.Chunk, queryTerms []string) float64 {
	raw := 0
	for _, term := range queryTerms {
		raw += chunk.TermCounts[term]
	}
	if raw == 0 {
		return 0
	}
	if !ix.lengthNormalize {
		return float64(raw)
	}
	length := 0
	for _, tf := range chunk.TermCounts {
		length += tf
	}
	return float64(raw) / math.Sqrt(float64(length))
}
