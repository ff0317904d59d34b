package cache

import (
	"errors"
	"testing"
	"time"

	"coursekit/internal/domain"
)

func retrievalOf(ids ...int) domain.Retrieval {
	r := domain.Retrieval{Relevant: true}
	for _, id := range ids {
		r.Chunks = append(r.Chunks, domain.ScoredChunk{Chunk: domain.Chunk{ID: id}, Score: 1})
	}
	return r
}

func TestQueryCacheGetPut(t *testing.T) {
	c := NewQueryCache(10, time.Minute)

	if _, ok := c.Get("energy", 4); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Put("energy", 4, retrievalOf(1, 2))
	got, ok := c.Get("energy", 4)
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got.Chunks) != 2 || got.Chunks[0].Chunk.ID != 1 {
		t.Errorf("unexpected cached retrieval: %+v", got)
	}

	if _, ok := c.Get("energy", 3); ok {
		t.Error("different k must not share an entry")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("stats = %d hits %d misses, want 1 and 2", hits, misses)
	}
}

func TestQueryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewQueryCache(2, time.Minute)

	c.Put("a", 1, retrievalOf(1))
	c.Put("b", 1, retrievalOf(2))
	c.Get("a", 1)
	c.Put("c", 1, retrievalOf(3))

	if c.Size() != 2 {
		t.Errorf("expected size 2, got %d", c.Size())
	}
	if _, ok := c.Get("b", 1); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get("a", 1); !ok {
		t.Error("expected a to survive")
	}
}

func TestQueryCacheTTL(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Put("energy", 4, retrievalOf(1))
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("energy", 4); ok {
		t.Error("expected expired entry to miss")
	}
	if c.Size() != 0 {
		t.Errorf("expected expired entry to be removed, size %d", c.Size())
	}
}

func TestQueryCacheInvalidate(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	c.Put("energy", 4, retrievalOf(1))

	c.Invalidate()

	if _, ok := c.Get("energy", 4); ok {
		t.Error("expected miss after invalidate")
	}
	if c.Size() != 0 {
		t.Errorf("expected empty cache, got %d", c.Size())
	}
}

type countingRetriever struct {
	calls int
	err   error
}

func (r *countingRetriever) Search(query string, k int) (domain.Retrieval, error) {
	r.calls++
	if r.err != nil {
		return domain.Retrieval{}, r.err
	}
	return retrievalOf(r.calls), nil
}

func TestCachedRetriever(t *testing.T) {
	inner := &countingRetriever{}
	r := NewCachedRetriever(inner, NewQueryCache(10, time.Minute))

	first, _ := r.Search("energy", 4)
	second, _ := r.Search("energy", 4)
	if inner.calls != 1 {
		t.Errorf("expected 1 underlying call, got %d", inner.calls)
	}
	if first.Chunks[0].Chunk.ID != second.Chunks[0].Chunk.ID {
		t.Error("expected cached result to be returned")
	}

	r.Invalidate()
	third, _ := r.Search("energy", 4)
	if inner.calls != 2 || third.Chunks[0].Chunk.ID != 2 {
		t.Errorf("expected a fresh search after invalidate, calls=%d", inner.calls)
	}
}

func TestCachedRetrieverError(t *testing.T) {
	boom := errors.New("boom")
	inner := &countingRetriever{err: boom}
	c := NewQueryCache(10, time.Minute)
	r := NewCachedRetriever(inner, c)

	if _, err := r.Search("energy", 4); !errors.Is(err, boom) {
		t.Errorf("expected the underlying error, got %v", err)
	}
	if c.Size() != 0 {
		t.Error("errors must not be cached")
	}
}

// invalidatingRetriever invalidates its cache during the first search, the
// way AddText can while another query is still being ranked.
type invalidatingRetriever struct {
	cached *CachedRetriever
	calls  int
}

func (r *invalidatingRetriever) Search(query string, k int) (domain.Retrieval, error) {
	r.calls++
	if r.calls == 1 {
		r.cached.Invalidate()
	}
	return retrievalOf(r.calls), nil
}

func TestCachedRetrieverSkipsStaleResult(t *testing.T) {
	inner := &invalidatingRetriever{}
	c := NewQueryCache(10, time.Minute)
	r := NewCachedRetriever(inner, c)
	inner.cached = r

	first, err := r.Search("energy", 4)
	if err != nil {
		t.Fatal(err)
	}
	if first.Chunks[0].Chunk.ID != 1 {
		t.Errorf("expected the in-flight result to be returned, got chunk %d", first.Chunks[0].Chunk.ID)
	}
	if c.Size() != 0 {
		t.Errorf("result computed across an invalidation was cached")
	}

	second, _ := r.Search("energy", 4)
	if inner.calls != 2 || second.Chunks[0].Chunk.ID != 2 {
		t.Errorf("expected a fresh search, calls=%d chunk=%d", inner.calls, second.Chunks[0].Chunk.ID)
	}

	third, _ := r.Search("energy", 4)
	if inner.calls != 2 || third.Chunks[0].Chunk.ID != 2 {
		t.Errorf("expected the fresh result to be cached, calls=%d", inner.calls)
	}
}

func TestPutIfCurrent(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	gen := c.Generation()
	c.Invalidate()

	if c.PutIfCurrent("energy", 4, retrievalOf(1), gen) {
		t.Error("expected a put with an old generation to be refused")
	}
	if !c.PutIfCurrent("energy", 4, retrievalOf(2), c.Generation()) {
		t.Error("expected a put with the current generation to be stored")
	}
	if got, ok := c.Get("energy", 4); !ok || got.Chunks[0].Chunk.ID != 2 {
		t.Errorf("expected the current result, got %+v %v", got, ok)
	}
}
