package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/observability"
)

// Match is the forecast file chosen for a search date.
type Match struct {
	Name  string
	Dates domain.ForecastDates
}

// Selector picks the forecast file whose dates are closest to a search date.
type Selector struct {
	weights domain.Weights
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSelector creates a Selector scoring candidates with the given weights.
func NewSelector(weights domain.Weights, logger *slog.Logger, metrics *observability.Metrics) *Selector {
	return &Selector{
		weights: weights,
		logger:  logger,
		metrics: metrics,
	}
}

// SelectBest scans names in order and returns the best match for search.
// Entries whose names do not decode are logged and skipped. Ties keep the
// earlier entry.
func (s *Selector) SelectBest(names []string, search time.Time) (Match, error) {
	if len(names) == 0 {
		return Match{}, domain.ErrEmptyDirectory
	}

	var best *Match
	for _, name := range names {
		s.metrics.FilesScanned.Inc()

		dates, err := domain.DecodeFilename(name)
		if err != nil {
			s.logger.Warn("skipping file, name does not decode", "file", name, "error", err)
			s.metrics.DecodeFailures.Inc()
			continue
		}

		var incumbent *domain.ForecastDates
		if best != nil {
			incumbent = &best.Dates
		}
		if domain.IsBetter(search, dates, incumbent, s.weights) {
			best = &Match{Name: name, Dates: dates}
		}
	}

	if best == nil {
		return Match{}, fmt.Errorf("%w for date %s", domain.ErrNoMatch, search.Format("2006-01-02"))
	}

	s.logger.Debug("forecast file selected",
		"file", best.Name,
		"search_date", search.Format("2006-01-02"),
		"score", domain.Score(search, best.Dates, s.weights),
	)
	return *best, nil
}
