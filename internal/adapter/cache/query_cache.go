package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"coursekit/internal/domain"
	"coursekit/internal/logger"
	"coursekit/internal/port"
)

// QueryCache is an LRU of retrieval results with a per-entry TTL. Entries
// recorded before the last Invalidate are never served.
type QueryCache struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	lru        *list.List
	maxSize    int
	ttl        time.Duration
	generation uint64
	now        func() time.Time

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	key        string
	retrieval  domain.Retrieval
	storedAt   time.Time
	generation uint64
}

func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 128
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*list.Element, maxSize),
		lru:     list.New(),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(query string, k int) string {
	hash := sha256.Sum256([]byte(query + "\x00" + strconv.Itoa(k)))
	return hex.EncodeToString(hash[:16])
}

func (c *QueryCache) Get(query string, k int) (domain.Retrieval, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(query, k)
	el, ok := c.entries[key]
	if !ok {
		c.misses++
		return domain.Retrieval{}, false
	}

	entry := el.Value.(*cacheEntry)
	if entry.generation != c.generation || c.now().Sub(entry.storedAt) > c.ttl {
		c.remove(el)
		c.misses++
		return domain.Retrieval{}, false
	}

	c.lru.MoveToFront(el)
	c.hits++
	return entry.retrieval, true
}

func (c *QueryCache) Put(query string, k int, r domain.Retrieval) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(cacheKey(query, k), r)
}

// PutIfCurrent stores r only if the cache has not been invalidated since
// gen was read from Generation. It reports whether r was stored.
func (c *QueryCache) PutIfCurrent(query string, k int, r domain.Retrieval, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.store(cacheKey(query, k), r)
	return true
}

// Generation counts Invalidate calls.
func (c *QueryCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *QueryCache) store(key string, r domain.Retrieval) {
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.retrieval = r
		entry.storedAt = c.now()
		entry.generation = c.generation
		c.lru.MoveToFront(el)
		return
	}

	for c.lru.Len() >= c.maxSize {
		c.remove(c.lru.Back())
	}

	c.entries[key] = c.lru.PushFront(&cacheEntry{
		key:        key,
		retrieval:  r,
		storedAt:   c.now(),
		generation: c.generation,
	})
}

// Invalidate drops every entry. Call it whenever the index grows.
func (c *QueryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element, c.maxSize)
	c.lru.Init()
	c.generation++
}

func (c *QueryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns the hit and miss counters.
func (c *QueryCache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *QueryCache) remove(el *list.Element) {
	if el == nil {
		return
	}
	entry := c.lru.Remove(el).(*cacheEntry)
	delete(c.entries, entry.key)
}

// CachedRetriever serves repeated queries from a QueryCache.
type CachedRetriever struct {
	retriever port.Retriever
	cache     *QueryCache
	log       *slog.Logger
}

func NewCachedRetriever(retriever port.Retriever, cache *QueryCache) *CachedRetriever {
	return &CachedRetriever{
		retriever: retriever,
		cache:     cache,
		log:       logger.WithComponent("cache"),
	}
}

// Search answers from the cache when it can. A result computed while the
// cache was invalidated is returned but not stored.
func (r *CachedRetriever) Search(query string, k int) (domain.Retrieval, error) {
	gen := r.cache.Generation()
	if res, hit := r.cache.Get(query, k); hit {
		r.log.Debug("retrieval cache hit", "query", query, "k", k)
		return res, nil
	}

	res, err := r.retriever.Search(query, k)
	if err != nil {
		return domain.Retrieval{}, err
	}

	r.log.Debug("retrieval cache miss", "query", query, "k", k, "relevant", res.Relevant)
	if !r.cache.PutIfCurrent(query, k, res, gen) {
		r.log.Debug("stale retrieval not cached", "query", query, "k", k)
	}
	return res, nil
}

func (r *CachedRetriever) Invalidate() {
	r.cache.Invalidate()
}
