package domain

import (
	"math"
	"time"
)

// GeoPoint is a latitude/longitude pair. No range is enforced.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// MeasurementPoint is a single precipitation reading at a grid point.
type MeasurementPoint struct {
	GeoPoint
	Value float64 `json:"value"`
}

// ForecastDates is the (issued, target) pair encoded in a forecast file name.
type ForecastDates struct {
	Issued time.Time `json:"issued"`
	Target time.Time `json:"target"`
}

// RenderRequest is the payload handed to the external chart renderer.
type RenderRequest struct {
	RunID       string             `json:"run_id"`
	Legend      string             `json:"legend"`
	Title       string             `json:"title"`
	Total       float64            `json:"total"`
	Boundary    []GeoPoint         `json:"boundary"`
	Points      []MeasurementPoint `json:"points"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
