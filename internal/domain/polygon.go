package domain

import "math"

// Polygon is an ordered ring of vertices. The ring is closed implicitly; a
// repeated closing vertex is allowed but not required. Self-intersecting rings
// are not validated and give implementation-defined results.
type Polygon struct {
	Vertices []GeoPoint `json:"vertices"`
}

// NewPolygon builds a Polygon over a copy of vertices.
func NewPolygon(vertices []GeoPoint) Polygon {
	return Polygon{Vertices: append([]GeoPoint(nil), vertices...)}
}

// Len returns the number of vertices.
func (p Polygon) Len() int { return len(p.Vertices) }

// Contains reports whether pt lies inside the polygon or on its boundary.
// Rings with fewer than three vertices have no interior, so only points on
// the degenerate boundary match.
func (p Polygon) Contains(pt GeoPoint) bool {
	n := len(p.Vertices)
	if n == 0 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Vertices[i], p.Vertices[j]
		if onSegment(pt, a, b) {
			return true
		}
		// Crossing-number test with a ray towards +lat.
		if (a.Long > pt.Long) != (b.Long > pt.Long) {
			crossLat := (b.Lat-a.Lat)*(pt.Long-a.Long)/(b.Long-a.Long) + a.Lat
			if pt.Lat < crossLat {
				inside = !inside
			}
		}
	}
	return n >= 3 && inside
}

func onSegment(pt, a, b GeoPoint) bool {
	cross := (b.Lat-a.Lat)*(pt.Long-a.Long) - (b.Long-a.Long)*(pt.Lat-a.Lat)
	if cross != 0 {
		return false
	}
	return pt.Lat >= math.Min(a.Lat, b.Lat) && pt.Lat <= math.Max(a.Lat, b.Lat) &&
		pt.Long >= math.Min(a.Long, b.Long) && pt.Long <= math.Max(a.Long, b.Long)
}

// FilterInside returns the points that fall inside or on boundary, in their
// original order. The result is never nil.
func FilterInside(boundary Polygon, points []MeasurementPoint) []MeasurementPoint {
	out := make([]MeasurementPoint, 0, len(points))
	for _, pt := range points {
		if boundary.Contains(pt.GeoPoint) {
			out = append(out, pt)
		}
	}
	return out
}
