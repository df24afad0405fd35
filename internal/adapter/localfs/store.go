package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
)

// Store reads forecast files from a single flat directory.
// It implements pipeline.DirectoryLister and pipeline.RecordReader.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// List returns the names of the non-directory entries in the store's
// directory. Subdirectories are not descended into.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// ReadMeasurements reads all readings from the named file in the store.
func (s *Store) ReadMeasurements(ctx context.Context, name string) ([]domain.MeasurementPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadMeasurementsFile(filepath.Join(s.dir, name))
}
