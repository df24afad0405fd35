// Command genmock generates a synthetic forecast directory and basin contour
// for local runs and test fixtures. It uses the domain package to name the
// files and to compute the expected accumulation, so the printed stats match
// real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -dir data/mock/forecast_files \
//	  -boundary data/mock/PSATCMG_CAMARGOS.bln \
//	  -start 011221 -days 5
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/precip-contour-etl/internal/adapter/localfs"
	"github.com/couchcryptid/precip-contour-etl/internal/domain"
)

// Grid origin roughly over the upper Rio Grande basin.
const (
	originLat  = -22.2
	originLong = -44.6
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", "", "output directory for forecast .dat files")
	boundaryOut := flag.String("boundary", "", "output path for the .bln contour")
	model := flag.String("model", "ETA40", "forecast model name used as file prefix")
	start := flag.String("start", "011221", "first issue date as DDMMYY")
	days := flag.Int("days", 5, "number of issue dates")
	horizon := flag.Int("horizon", 3, "target days per issue date")
	size := flag.Int("grid", 8, "grid points per axis")
	step := flag.Float64("step", 0.1, "grid spacing in degrees")
	flag.Parse()

	if *dir == "" || *boundaryOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -dir, -boundary")
	}
	if *days < 1 || *horizon < 1 || *size < 2 {
		return fmt.Errorf("-days, -horizon must be >= 1 and -grid >= 2")
	}

	first, err := domain.ParseDDMMYY(*start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	// Fixed clock so repeated runs produce identical fixtures.
	domain.SetClock(clockwork.NewFakeClockAt(first))
	defer domain.SetClock(nil)

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return err
	}

	boundary := squareBoundary(*size, *step)
	builder := domain.NewSurfaceBuilder()
	files := 0

	for d := range *days {
		issued := domain.Today().AddDate(0, 0, d)
		for h := 1; h <= *horizon; h++ {
			dates := domain.ForecastDates{Issued: issued, Target: issued.AddDate(0, 0, h)}
			points := grid(*size, *step, d*(*horizon)+h)

			name := domain.EncodeFilename(*model, dates)
			if err := localfs.WritePointsFile(filepath.Join(*dir, name), points); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			builder.Add(domain.FilterInside(boundary, points)...)
			files++
		}
	}
	log.Printf("wrote %d forecast files to %s", files, *dir)

	if err := os.MkdirAll(filepath.Dir(*boundaryOut), 0o755); err != nil {
		return err
	}
	if err := localfs.WriteBoundaryFile(*boundaryOut, boundary); err != nil {
		return fmt.Errorf("writing boundary: %w", err)
	}
	log.Printf("wrote boundary: %s", *boundaryOut)

	printStats(builder.Build(), builder.Readings(), files)
	return nil
}

// grid produces a size x size lattice with a smooth rainfall field. seed
// shifts the field so every file differs.
func grid(size int, step float64, seed int) []domain.MeasurementPoint {
	points := make([]domain.MeasurementPoint, 0, size*size)
	for i := range size {
		for j := range size {
			lat := domain.RoundTo(originLat+float64(i)*step, 4)
			long := domain.RoundTo(originLong+float64(j)*step, 4)
			v := 10 + 8*math.Sin(float64(i+seed)/3)*math.Cos(float64(j-seed)/4)
			points = append(points, domain.MeasurementPoint{
				GeoPoint: domain.GeoPoint{Lat: lat, Long: long},
				Value:    domain.RoundTo(math.Max(v, 0), 2),
			})
		}
	}
	return points
}

// squareBoundary insets a square one grid step inside the lattice. Its
// corners land on grid points so boundary inclusion is exercised.
func squareBoundary(size int, step float64) domain.Polygon {
	lo := step
	hi := float64(size-2) * step
	corner := func(dLat, dLong float64) domain.GeoPoint {
		return domain.GeoPoint{
			Lat:  domain.RoundTo(originLat+dLat, 4),
			Long: domain.RoundTo(originLong+dLong, 4),
		}
	}
	return domain.NewPolygon([]domain.GeoPoint{
		corner(lo, lo), corner(lo, hi), corner(hi, hi), corner(hi, lo), corner(lo, lo),
	})
}

func printStats(s domain.Surface, readings, files int) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Generated at: %s\n", domain.Now().Format(time.RFC3339))
	fmt.Printf("Files: %d\n", files)
	fmt.Printf("Readings inside boundary: %d\n", readings)
	fmt.Printf("Surface cells: %d\n", len(s.Cells))
	fmt.Printf("Accumulated total: %.2f\n", s.Total())
}
