// Package domain models gridded precipitation forecasts and the region of
// interest they are clipped to.
//
// # Data Source
//
// Forecast files are produced by a regional numerical model (ETA40 in the
// reference data set) and dropped into a flat directory, one file per
// (issued, target) pair. Each file holds one precipitation reading per grid
// point. The region of interest is a river-basin contour stored as a .bln
// boundary file.
//
// # File Conventions
//
// Forecast file names:
//
//	"<model>_p<DDMMYY>a<DDMMYY>.dat"  →  e.g. "ETA40_p011221a021221.dat"
//	issued on 2021-12-01, forecasting 2021-12-02.
//	The marker is the letter "p". The separator between the two dates is any
//	single non-digit character ("a" in practice). Two-digit years pivot at 69:
//	69-99 are 19xx, 00-68 are 20xx.
//
// Forecast file contents, one reading per line, whitespace separated:
//
//	-22.6  -44.6  3.4
//	<lat>  <long> <precipitation mm>
//
// Boundary (.bln) contents, comma separated, with a mandatory header whose
// first field is the number of vertex lines that follow:
//
//	5, 0
//	-22.0, -44.0
//	...
//
// # Selection
//
// A search date is matched to the file whose issued and target dates are
// closest to it, scored as a weighted sum of absolute day distances. See
// [Score] and [IsBetter].
//
// # Containment
//
// Coordinates are treated as planar (x=lat, y=long). A reading on the
// boundary of the contour counts as inside. See [Polygon.Contains].
package domain
