package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.FilesScanned.Inc()
	a.ReaderCache.WithLabelValues("hit").Inc()

	assert.InDelta(t, 1.0, testutil.ToFloat64(a.FilesScanned), 1e-9)
	assert.InDelta(t, 0.0, testutil.ToFloat64(b.FilesScanned), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(a.ReaderCache.WithLabelValues("hit")), 1e-9)
}

func TestWriteTextfile_EmptyPathNoop(t *testing.T) {
	require.NoError(t, WriteTextfile(""))
}

func TestWriteTextfile_WritesDefaultRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "precip.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "go_goroutines")
}
