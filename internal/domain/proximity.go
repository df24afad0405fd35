package domain

import "time"

// Weights controls how much the issued and target distances contribute to a
// proximity score. Values are used as given; no normalization is applied.
type Weights struct {
	Issued float64 `json:"issued"`
	Target float64 `json:"target"`
}

// DefaultWeights gives issued and target distance equal emphasis.
var DefaultWeights = Weights{Issued: 0.5, Target: 0.5}

// Score returns the weighted day distance from search to a candidate pair.
// Lower is better.
func Score(search time.Time, dates ForecastDates, w Weights) float64 {
	return w.Issued*float64(DaysApart(search, dates.Issued)) +
		w.Target*float64(DaysApart(search, dates.Target))
}

// IsBetter reports whether candidate should replace best as the closest match
// to search. A nil best always loses. Ties keep the incumbent.
func IsBetter(search time.Time, candidate ForecastDates, best *ForecastDates, w Weights) bool {
	if best == nil {
		return true
	}
	return Score(search, candidate, w) < Score(search, *best, w)
}

// DaysApart returns the absolute number of calendar days between a and b.
func DaysApart(a, b time.Time) int {
	d := TruncateDay(a.UTC()).Sub(TruncateDay(b.UTC()))
	days := int(d / (24 * time.Hour))
	if days < 0 {
		return -days
	}
	return days
}
