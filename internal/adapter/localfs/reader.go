package localfs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
)

// zstdMagic is the little-endian zstd frame magic number 0xFD2FB528.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// boundarySplitRe splits a .bln line on commas, eating whitespace before them.
var boundarySplitRe = regexp.MustCompile(`\s*,`)

// ReadMeasurementsFile reads whitespace separated "lat long value" lines.
// Archived files compressed with zstd are decompressed transparently.
func ReadMeasurementsFile(path string) ([]domain.MeasurementPoint, error) {
	rc, err := openData(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ParseMeasurements(rc, path)
}

// ParseMeasurements parses measurement lines from r. Blank lines are skipped;
// every other line must hold exactly three finite numbers.
func ParseMeasurements(r io.Reader, source string) ([]domain.MeasurementPoint, error) {
	var points []domain.MeasurementPoint
	lineNo := 0
	err := scanLines(r, func(line string) error {
		lineNo++
		fields := strings.Fields(line)
		if len(fields) == 0 {
			return nil
		}
		if len(fields) != 3 {
			return &domain.FormatError{Source: source, Line: lineNo,
				Reason: fmt.Sprintf("expected 3 columns (lat long value), got %d", len(fields))}
		}
		vals, err := parseFloats(fields, source, lineNo)
		if err != nil {
			return err
		}
		points = append(points, domain.MeasurementPoint{
			GeoPoint: domain.GeoPoint{Lat: vals[0], Long: vals[1]},
			Value:    vals[2],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

// ReadBoundaryFile reads a .bln contour file into a Polygon.
func ReadBoundaryFile(path string) (domain.Polygon, error) {
	rc, err := openData(path)
	if err != nil {
		return domain.Polygon{}, err
	}
	defer rc.Close()
	return ParseBoundary(rc, path)
}

// ParseBoundary parses comma separated "lat, long" lines. The first non-blank
// line is a header whose first field must equal the number of vertex lines
// that follow. Fields beyond the second are validated and ignored.
func ParseBoundary(r io.Reader, source string) (domain.Polygon, error) {
	var (
		vertices  []domain.GeoPoint
		declared  int
		hasHeader bool
		lineNo    int
	)
	err := scanLines(r, func(line string) error {
		lineNo++
		fields := boundarySplitRe.Split(strings.TrimSpace(line), -1)
		if fields[0] == "" {
			return nil
		}
		vals, err := parseFloats(fields, source, lineNo)
		if err != nil {
			return err
		}
		if !hasHeader {
			hasHeader = true
			declared = int(vals[0])
			return nil
		}
		if len(vals) < 2 {
			return &domain.FormatError{Source: source, Line: lineNo, Reason: "expected lat, long"}
		}
		vertices = append(vertices, domain.GeoPoint{Lat: vals[0], Long: vals[1]})
		return nil
	})
	if err != nil {
		return domain.Polygon{}, err
	}
	if !hasHeader {
		return domain.Polygon{}, domain.NewFormatError(source, "missing vertex count header", nil)
	}
	if declared != len(vertices) {
		return domain.Polygon{}, domain.NewFormatError(source,
			fmt.Sprintf("header declares %d vertices, found %d", declared, len(vertices)), nil)
	}
	return domain.NewPolygon(vertices), nil
}

func parseFloats(fields []string, source string, lineNo int) ([]float64, error) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, &domain.FormatError{Source: source, Line: lineNo,
				Reason: fmt.Sprintf("column %d is not numeric", i+1), Err: err}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &domain.FormatError{Source: source, Line: lineNo,
				Reason: fmt.Sprintf("column %d is not finite", i+1)}
		}
		vals[i] = v
	}
	return vals, nil
}

func scanLines(r io.Reader, fn func(line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

// openData opens path, sniffing for a zstd frame so archived files can be
// read in place.
func openData(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	head, _ := br.Peek(len(zstdMagic))
	if !bytes.Equal(head, zstdMagic) {
		return &plainFile{Reader: br, f: f}, nil
	}

	dec, err := zstd.NewReader(br)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zstd reader for %s: %w", path, err)
	}
	return &zstdFile{Decoder: dec, f: f}, nil
}

type plainFile struct {
	*bufio.Reader
	f *os.File
}

func (p *plainFile) Close() error { return p.f.Close() }

type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (z *zstdFile) Close() error {
	z.Decoder.Close()
	return z.f.Close()
}
