package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/observability"
)

// Aggregator clips every forecast data file to a boundary and averages the
// surviving readings per coordinate.
type Aggregator struct {
	reader  RecordReader
	logger  *slog.Logger
	metrics *observability.Metrics
	workers int
}

// NewAggregator creates an Aggregator. workers bounds how many files are
// read and clipped concurrently; values below 1 are treated as 1.
func NewAggregator(reader RecordReader, logger *slog.Logger, metrics *observability.Metrics, workers int) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	return &Aggregator{
		reader:  reader,
		logger:  logger,
		metrics: metrics,
		workers: workers,
	}
}

// Accumulate reads each name ending in the data extension, keeps the readings
// inside boundary, and returns the per-coordinate mean. A read error aborts the
// whole accumulation; when several files fail, the error of the earliest one in
// names is returned. An empty result is not an error.
//
// Files may be processed concurrently, but readings and errors are merged in
// the order names are given, so the outcome is identical for any worker count.
func (a *Aggregator) Accumulate(ctx context.Context, boundary domain.Polygon, names []string) (domain.Surface, error) {
	files := dataFiles(names)
	clipped := make([][]domain.MeasurementPoint, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(a.workers)

	for i, name := range files {
		g.Go(func() error {
			points, err := a.reader.ReadMeasurements(ctx, name)
			if err != nil {
				errs[i] = fmt.Errorf("read %s: %w", name, err)
				return nil
			}
			inside := domain.FilterInside(boundary, points)

			a.metrics.FilesAggregated.Inc()
			a.metrics.PointsRead.Add(float64(len(points)))
			a.metrics.PointsInside.Add(float64(len(inside)))
			a.logger.Debug("file clipped", "file", name, "points", len(points), "inside", len(inside))

			clipped[i] = inside
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return domain.Surface{}, err
		}
	}

	builder := domain.NewSurfaceBuilder()
	for _, points := range clipped {
		builder.Add(points...)
	}
	surface := builder.Build()
	a.metrics.SurfaceCells.Set(float64(len(surface.Cells)))

	if surface.IsEmpty() {
		a.logger.Warn("accumulated precipitation is empty for boundary",
			"files", len(files),
			"boundary_vertices", boundary.Len(),
		)
	}
	return surface, nil
}

func dataFiles(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if strings.HasSuffix(n, domain.DataExtension) {
			out = append(out, n)
		}
	}
	return out
}
