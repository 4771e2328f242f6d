package search

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/javijec/new-biblia/internal/corpus"
)

// Loader reads the book index and individual books. *artifacts.Store
// satisfies it.
type Loader interface {
	LoadIndex() (*corpus.BookIndex, error)
	LoadBook(id string) (*corpus.Book, error)
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
	MaxSize   int   `json:"maxSize"`
}

// BookCache loads books on first use and keeps them. With a positive maxSize
// it evicts the least recently used book; with zero it never evicts. Safe for
// concurrent use. Failed loads are not cached.
type BookCache struct {
	loader  Loader
	maxSize int

	mu        sync.RWMutex
	entries   map[string]*list.Element
	evictList *list.List

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

type cacheEntry struct {
	id   string
	book *corpus.Book
}

func NewBookCache(loader Loader, maxSize int) *BookCache {
	if maxSize < 0 {
		maxSize = 0
	}
	return &BookCache{
		loader:    loader,
		maxSize:   maxSize,
		entries:   make(map[string]*list.Element),
		evictList: list.New(),
	}
}

// Get returns the cached book or loads it.
func (c *BookCache) Get(id string) (*corpus.Book, error) {
	if book, ok := c.lookup(id); ok {
		return book, nil
	}

	book, err := c.loader.LoadBook(id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have loaded it meanwhile; keep the first copy.
	if ent, ok := c.entries[id]; ok {
		return ent.Value.(*cacheEntry).book, nil
	}
	c.entries[id] = c.evictList.PushFront(&cacheEntry{id: id, book: book})
	if c.maxSize > 0 && c.evictList.Len() > c.maxSize {
		c.removeOldest()
	}
	return book, nil
}

func (c *BookCache) lookup(id string) (*corpus.Book, bool) {
	var ent *list.Element
	var ok bool
	if c.maxSize == 0 {
		c.mu.RLock()
		ent, ok = c.entries[id]
		c.mu.RUnlock()
	} else {
		c.mu.Lock()
		if ent, ok = c.entries[id]; ok {
			c.evictList.MoveToFront(ent)
		}
		c.mu.Unlock()
	}

	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return ent.Value.(*cacheEntry).book, true
}

func (c *BookCache) removeOldest() {
	ent := c.evictList.Back()
	if ent == nil {
		return
	}
	c.evictList.Remove(ent)
	delete(c.entries, ent.Value.(*cacheEntry).id)
	c.evictions.Add(1)
}

func (c *BookCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.evictList.Len()
}

func (c *BookCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.evictList.Len(),
		MaxSize:   c.maxSize,
	}
}
