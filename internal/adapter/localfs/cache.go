package localfs

import (
	"container/list"
	"context"
	"sync"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/observability"
)

// MeasurementReader is the subset of Store that CachedReader decorates.
type MeasurementReader interface {
	ReadMeasurements(ctx context.Context, name string) ([]domain.MeasurementPoint, error)
}

// CachedReader wraps a MeasurementReader with an in-memory LRU cache keyed by
// file name. Cached slices are shared between callers and must not be mutated.
type CachedReader struct {
	inner   MeasurementReader
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedReader creates a cache decorator around a reader.
func NewCachedReader(inner MeasurementReader, maxEntries int, metrics *observability.Metrics) *CachedReader {
	return &CachedReader{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedReader) ReadMeasurements(ctx context.Context, name string) ([]domain.MeasurementPoint, error) {
	if points, ok := c.cache.get(name); ok {
		c.metrics.ReaderCache.WithLabelValues("hit").Inc()
		return points, nil
	}
	c.metrics.ReaderCache.WithLabelValues("miss").Inc()

	points, err := c.inner.ReadMeasurements(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.put(name, points)
	return points, nil
}

// lruCache holds parsed forecast files, most recently used at the front.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	order      *list.List
	entries    map[string]*list.Element
}

type cacheEntry struct {
	name   string
	points []domain.MeasurementPoint
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
	}
}

func (c *lruCache) get(name string) ([]domain.MeasurementPoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[name]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).points, true
}

func (c *lruCache) put(name string, points []domain.MeasurementPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[name]; ok {
		el.Value.(*cacheEntry).points = points
		c.order.MoveToFront(el)
		return
	}
	c.entries[name] = c.order.PushFront(&cacheEntry{name: name, points: points})

	for c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).name)
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
