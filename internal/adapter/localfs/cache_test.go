package localfs

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/observability"
)

// --- mock for cache tests ---

type countingReader struct {
	calls  map[string]int
	points []domain.MeasurementPoint
	err    error
}

func (m *countingReader) ReadMeasurements(_ context.Context, name string) ([]domain.MeasurementPoint, error) {
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
	return m.points, m.err
}

func testPoints(v float64) []domain.MeasurementPoint {
	return []domain.MeasurementPoint{{GeoPoint: domain.GeoPoint{Lat: 0.5, Long: 0.5}, Value: v}}
}

// --- CachedReader tests ---

func TestCachedReader_CacheHit(t *testing.T) {
	inner := &countingReader{points: testPoints(1)}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedReader(inner, 10, metrics)

	p1, err := cached.ReadMeasurements(context.Background(), "a.dat")
	require.NoError(t, err)
	p2, err := cached.ReadMeasurements(context.Background(), "a.dat")
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, 1, inner.calls["a.dat"], "should only call inner once")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReaderCache.WithLabelValues("hit")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReaderCache.WithLabelValues("miss")), 1e-9)
}

func TestCachedReader_DifferentKeysMiss(t *testing.T) {
	inner := &countingReader{points: testPoints(1)}
	cached := NewCachedReader(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ReadMeasurements(context.Background(), "a.dat")
	_, _ = cached.ReadMeasurements(context.Background(), "b.dat")

	assert.Equal(t, 1, inner.calls["a.dat"])
	assert.Equal(t, 1, inner.calls["b.dat"])
}

func TestCachedReader_ErrorsNotCached(t *testing.T) {
	inner := &countingReader{err: errors.New("disk gone")}
	cached := NewCachedReader(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.ReadMeasurements(context.Background(), "a.dat")
	require.Error(t, err)
	_, err = cached.ReadMeasurements(context.Background(), "a.dat")
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls["a.dat"])
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", testPoints(1))
	c.put("b", testPoints(2))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, testPoints(1), result)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", testPoints(1))
	c.put("b", testPoints(2))
	c.put("c", testPoints(3)) // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, testPoints(2), result)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, testPoints(3), result)
	assert.Equal(t, 2, c.len())
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", testPoints(1))
	c.put("b", testPoints(2))

	// Access "a" to promote it
	c.get("a")

	// Insert "c"; should evict "b" (LRU), not "a"
	c.put("c", testPoints(3))

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", testPoints(1))
	c.put("a", testPoints(2))

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, testPoints(2), result)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_SingleEntry(t *testing.T) {
	c := newLRUCache(1)

	c.put("a", testPoints(1))
	c.put("b", testPoints(2))

	_, ok := c.get("a")
	assert.False(t, ok)
	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, testPoints(2), result)
	assert.Equal(t, 1, c.len())
}
