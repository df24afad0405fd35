package localfs

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
)

// WritePointsFile writes points as "lat long value" lines, the same layout
// the forecast data files use, so the output can be fed back as input.
func WritePointsFile(path string, points []domain.MeasurementPoint) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range points {
		fmt.Fprintf(w, "%s %s %s\n", formatFloat(p.Lat), formatFloat(p.Long), formatFloat(p.Value))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteRenderRequest writes the chart payload as indented JSON.
func WriteRenderRequest(path string, req domain.RenderRequest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize render request: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// WriteBoundaryFile writes a .bln file with its vertex count header.
func WriteBoundaryFile(path string, boundary domain.Polygon) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d, 0\n", boundary.Len())
	for _, v := range boundary.Vertices {
		fmt.Fprintf(w, "%s, %s\n", formatFloat(v.Lat), formatFloat(v.Long))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
