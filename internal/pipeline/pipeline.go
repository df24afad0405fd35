package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/observability"
)

// DirectoryLister returns the file names available for a run.
type DirectoryLister interface {
	List(ctx context.Context) ([]string, error)
}

// RecordReader reads the measurement records of one forecast file.
type RecordReader interface {
	ReadMeasurements(ctx context.Context, name string) ([]domain.MeasurementPoint, error)
}

// Run modes.
const (
	ModeSelect     = "select"
	ModeAccumulate = "accumulate"
	ModeReport     = "report"
)

// Result is the clipped output of one mode, ready for rendering.
type Result struct {
	Mode         string
	SelectedFile string // empty for accumulation
	Legend       string
	Points       []domain.MeasurementPoint
}

// Total sums the values of the result points.
func (r Result) Total() float64 {
	var total float64
	for _, p := range r.Points {
		total += p.Value
	}
	return total
}

// RenderRequest builds the chart payload for the external renderer.
func (r Result) RenderRequest(runID string, boundary domain.Polygon, generatedAt time.Time) domain.RenderRequest {
	total := domain.RoundTo(r.Total(), 2)
	return domain.RenderRequest{
		RunID:       runID,
		Legend:      r.Legend,
		Title:       fmt.Sprintf("Precipitation %s: %.2f", r.Legend, total),
		Total:       total,
		Boundary:    boundary.Vertices,
		Points:      r.Points,
		GeneratedAt: generatedAt,
	}
}

// Runner wires the directory listing, selector, and aggregator into the
// batch modes.
type Runner struct {
	lister     DirectoryLister
	reader     RecordReader
	selector   *Selector
	aggregator *Aggregator
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Runner with the given stages and observability.
func New(l DirectoryLister, r RecordReader, s *Selector, a *Aggregator, logger *slog.Logger, metrics *observability.Metrics) *Runner {
	return &Runner{
		lister:     l,
		reader:     r,
		selector:   s,
		aggregator: a,
		logger:     logger,
		metrics:    metrics,
	}
}

// Select finds the forecast file closest to search and clips it to boundary.
// Listing failures are returned as is; only per-file name decoding is tolerated.
func (r *Runner) Select(ctx context.Context, boundary domain.Polygon, search time.Time) (Result, error) {
	defer r.observe(ModeSelect, time.Now())

	names, err := r.lister.List(ctx)
	if err != nil {
		return Result{}, err
	}
	return r.selectFrom(ctx, names, boundary, search)
}

// Accumulate averages every forecast data file inside boundary.
func (r *Runner) Accumulate(ctx context.Context, boundary domain.Polygon) (Result, error) {
	defer r.observe(ModeAccumulate, time.Now())

	names, err := r.lister.List(ctx)
	if err != nil {
		return Result{}, err
	}
	return r.accumulateFrom(ctx, names, boundary)
}

// Report lists the directory once and runs selection then accumulation over
// that listing.
func (r *Runner) Report(ctx context.Context, boundary domain.Polygon, search time.Time) ([]Result, error) {
	defer r.observe(ModeReport, time.Now())

	names, err := r.lister.List(ctx)
	if err != nil {
		return nil, err
	}
	selected, err := r.selectFrom(ctx, names, boundary, search)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	accumulated, err := r.accumulateFrom(ctx, names, boundary)
	if err != nil {
		return nil, fmt.Errorf("accumulate: %w", err)
	}
	return []Result{selected, accumulated}, nil
}

func (r *Runner) selectFrom(ctx context.Context, names []string, boundary domain.Polygon, search time.Time) (Result, error) {
	match, err := r.selector.SelectBest(names, search)
	if err != nil {
		return Result{}, err
	}

	points, err := r.reader.ReadMeasurements(ctx, match.Name)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", match.Name, err)
	}
	inside := domain.FilterInside(boundary, points)

	token, err := domain.DatePairToken(match.Name)
	if err != nil {
		return Result{}, err
	}

	r.logger.Info("forecast selected",
		"search_date", search.Format("2006-01-02"),
		"file", match.Name,
		"issued", match.Dates.Issued.Format("2006-01-02"),
		"target", match.Dates.Target.Format("2006-01-02"),
		"points_inside", len(inside),
	)
	return Result{
		Mode:         ModeSelect,
		SelectedFile: match.Name,
		Legend:       "accumulated " + token,
		Points:       inside,
	}, nil
}

func (r *Runner) accumulateFrom(ctx context.Context, names []string, boundary domain.Polygon) (Result, error) {
	surface, err := r.aggregator.Accumulate(ctx, boundary, names)
	if err != nil {
		return Result{}, err
	}

	r.logger.Info("precipitation accumulated",
		"files", len(names),
		"cells", len(surface.Cells),
		"total", domain.RoundTo(surface.Total(), 2),
	)
	return Result{
		Mode:   ModeAccumulate,
		Legend: "accumulated",
		Points: surface.Points(),
	}, nil
}

func (r *Runner) observe(mode string, start time.Time) {
	r.metrics.RunDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}
