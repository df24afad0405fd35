package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/observability"
)

// --- mocks ---

type mockLister struct {
	names []string
	err   error
	calls int
}

func (m *mockLister) List(_ context.Context) ([]string, error) {
	m.calls++
	return m.names, m.err
}

type mockReader struct {
	mu    sync.Mutex
	files map[string][]domain.MeasurementPoint
	errs  map[string]error
	reads []string
}

func (m *mockReader) ReadMeasurements(_ context.Context, name string) ([]domain.MeasurementPoint, error) {
	m.mu.Lock()
	m.reads = append(m.reads, name)
	m.mu.Unlock()

	if err, ok := m.errs[name]; ok {
		return nil, err
	}
	points, ok := m.files[name]
	if !ok {
		return nil, errors.New("no such file: " + name)
	}
	return points, nil
}

// --- helpers ---

func newTestMetrics() *observability.Metrics {
	// Use unregistered metrics to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func mp(lat, long, value float64) domain.MeasurementPoint {
	return domain.MeasurementPoint{GeoPoint: domain.GeoPoint{Lat: lat, Long: long}, Value: value}
}

func unitSquare() domain.Polygon {
	return domain.NewPolygon([]domain.GeoPoint{{Lat: 0, Long: 0}, {Lat: 1, Long: 0}, {Lat: 1, Long: 1}, {Lat: 0, Long: 1}})
}
