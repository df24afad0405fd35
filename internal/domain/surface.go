package domain

import "sort"

// SurfaceCell is the mean reading observed at one exact coordinate.
type SurfaceCell struct {
	GeoPoint
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Surface is the accumulated precipitation per coordinate, ordered by
// latitude then longitude.
type Surface struct {
	Cells []SurfaceCell `json:"cells"`
}

// IsEmpty reports whether no coordinate contributed.
func (s Surface) IsEmpty() bool { return len(s.Cells) == 0 }

// lookup returns the mean at an exact coordinate.
func (s Surface) lookup(pt GeoPoint) (float64, bool) {
	i := sort.Search(len(s.Cells), func(i int) bool {
		return !lessPoint(s.Cells[i].GeoPoint, pt)
	})
	if i < len(s.Cells) && s.Cells[i].GeoPoint == pt {
		return s.Cells[i].Mean, true
	}
	return 0, false
}

// Total sums the per-coordinate means.
func (s Surface) Total() float64 {
	var total float64
	for _, c := range s.Cells {
		total += c.Mean
	}
	return total
}

// Points flattens the surface into measurement points carrying the mean.
func (s Surface) Points() []MeasurementPoint {
	out := make([]MeasurementPoint, len(s.Cells))
	for i, c := range s.Cells {
		out[i] = MeasurementPoint{GeoPoint: c.GeoPoint, Value: c.Mean}
	}
	return out
}

// SurfaceBuilder groups readings by exact coordinate. Keys use float equality
// with no snapping. The zero value is not usable; call NewSurfaceBuilder.
type SurfaceBuilder struct {
	sums   map[GeoPoint]float64
	counts map[GeoPoint]int
	n      int
}

// NewSurfaceBuilder returns an empty builder.
func NewSurfaceBuilder() *SurfaceBuilder {
	return &SurfaceBuilder{
		sums:   make(map[GeoPoint]float64),
		counts: make(map[GeoPoint]int),
	}
}

// Add folds readings into their coordinate groups.
func (b *SurfaceBuilder) Add(points ...MeasurementPoint) {
	for _, p := range points {
		b.sums[p.GeoPoint] += p.Value
		b.counts[p.GeoPoint]++
	}
	b.n += len(points)
}

// Readings returns how many readings have been added.
func (b *SurfaceBuilder) Readings() int { return b.n }

// Build computes the per-coordinate means.
func (b *SurfaceBuilder) Build() Surface {
	cells := make([]SurfaceCell, 0, len(b.sums))
	for pt, sum := range b.sums {
		n := b.counts[pt]
		cells = append(cells, SurfaceCell{GeoPoint: pt, Mean: sum / float64(n), Count: n})
	}
	sort.Slice(cells, func(i, j int) bool { return lessPoint(cells[i].GeoPoint, cells[j].GeoPoint) })
	return Surface{Cells: cells}
}

func lessPoint(a, b GeoPoint) bool {
	if a.Lat != b.Lat {
		return a.Lat < b.Lat
	}
	return a.Long < b.Long
}
