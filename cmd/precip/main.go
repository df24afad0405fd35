// Command precip clips gridded precipitation forecasts to a river-basin
// contour and writes the result for the chart renderer.
//
// Modes:
//
//	select      pick the forecast file closest to -date and clip it
//	accumulate  average every forecast file inside the contour
//	report      both, sharing one cached read of each file
//
// Usage:
//
//	FORECAST_DIR=forecast_files BOUNDARY_FILE=PSATCMG_CAMARGOS.bln \
//	  go run ./cmd/precip -mode select -date 151221
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/precip-contour-etl/internal/adapter/localfs"
	"github.com/couchcryptid/precip-contour-etl/internal/config"
	"github.com/couchcryptid/precip-contour-etl/internal/domain"
	"github.com/couchcryptid/precip-contour-etl/internal/observability"
	"github.com/couchcryptid/precip-contour-etl/internal/pipeline"
)

func main() {
	mode := flag.String("mode", pipeline.ModeAccumulate, "run mode: select, accumulate, or report")
	dateStr := flag.String("date", "", "search date as DDMMYY (default: today, UTC)")
	flag.Parse()

	if err := run(*mode, *dateStr); err != nil {
		slog.Error("precip run failed", "error", err)
		os.Exit(1)
	}
}

func run(mode, dateStr string) error {
	switch mode {
	case pipeline.ModeSelect, pipeline.ModeAccumulate, pipeline.ModeReport:
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runID := uuid.NewString()
	logger := observability.NewLogger(cfg).With("run_id", runID, "mode", mode)
	slog.SetDefault(logger)
	metrics := observability.NewMetrics()

	search, err := searchDate(dateStr)
	if err != nil {
		return err
	}

	boundary, err := localfs.ReadBoundaryFile(cfg.BoundaryFile)
	if err != nil {
		return fmt.Errorf("load boundary: %w", err)
	}
	logger.Info("boundary loaded", "file", cfg.BoundaryFile, "vertices", boundary.Len())

	store := localfs.NewStore(cfg.ForecastDir)
	reader := localfs.NewCachedReader(store, cfg.ReaderCacheSize, metrics)
	selector := pipeline.NewSelector(cfg.Weights(), logger, metrics)
	aggregator := pipeline.NewAggregator(reader, logger, metrics, cfg.Workers)
	runner := pipeline.New(store, reader, selector, aggregator, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results []pipeline.Result
	switch mode {
	case pipeline.ModeSelect:
		res, err := runner.Select(ctx, boundary, search)
		if err != nil {
			return err
		}
		results = append(results, res)
	case pipeline.ModeAccumulate:
		res, err := runner.Accumulate(ctx, boundary)
		if err != nil {
			return err
		}
		results = append(results, res)
	case pipeline.ModeReport:
		if results, err = runner.Report(ctx, boundary, search); err != nil {
			return err
		}
	}

	generatedAt := domain.Now()
	for _, res := range results {
		if err := writeResult(cfg.OutputDir, runID, boundary, res, generatedAt); err != nil {
			return err
		}
		logger.Info("result written", "legend", res.Legend, "points", len(res.Points),
			"total", domain.RoundTo(res.Total(), 2))
	}

	if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Error("metrics textfile write failed", "path", cfg.MetricsTextfile, "error", err)
	}
	return nil
}

func searchDate(s string) (time.Time, error) {
	if s == "" {
		return domain.Today(), nil
	}
	d, err := domain.ParseDDMMYY(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("search date: %w", err)
	}
	return d, nil
}

// writeResult stores the clipped points next to their render request, e.g.
// accumulated_precipitation.dat / accumulated_precipitation.json.
func writeResult(dir, runID string, boundary domain.Polygon, res pipeline.Result, at time.Time) error {
	base := "accumulated_precipitation"
	if res.SelectedFile != "" {
		base = "forecast_" + strings.TrimSuffix(res.SelectedFile, domain.DataExtension)
	}

	if err := localfs.WritePointsFile(filepath.Join(dir, base+domain.DataExtension), res.Points); err != nil {
		return fmt.Errorf("write points: %w", err)
	}
	req := res.RenderRequest(runID, boundary, at)
	if err := localfs.WriteRenderRequest(filepath.Join(dir, base+".json"), req); err != nil {
		return fmt.Errorf("write render request: %w", err)
	}
	return nil
}
