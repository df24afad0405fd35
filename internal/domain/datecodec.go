package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// DataExtension is the suffix every forecast data file carries.
	DataExtension = ".dat"

	// dateLayout is DDMMYY.
	dateLayout = "020106"
)

// datePairRe captures "<digits><separator><digits>" right after the "p" marker,
// e.g. "ETA40_p011221a021221.dat" -> "011221", "a", "021221".
var datePairRe = regexp.MustCompile(`p(\d+)(\D)(\d+)`)

// DecodeFilename extracts the issued and target dates from a forecast file name.
// It fails with ErrFormat when the extension is wrong, the date pair is missing,
// or either date is not a valid DDMMYY value.
func DecodeFilename(name string) (ForecastDates, error) {
	if !strings.HasSuffix(name, DataExtension) {
		return ForecastDates{}, NewFormatError(name, "not a "+DataExtension+" file", nil)
	}

	issuedTok, targetTok, err := splitDatePair(name)
	if err != nil {
		return ForecastDates{}, err
	}

	issued, err := ParseDDMMYY(issuedTok)
	if err != nil {
		return ForecastDates{}, NewFormatError(name, "invalid issued date", err)
	}
	target, err := ParseDDMMYY(targetTok)
	if err != nil {
		return ForecastDates{}, NewFormatError(name, "invalid target date", err)
	}

	return ForecastDates{Issued: issued, Target: target}, nil
}

// DatePairToken returns the raw "<issued><sep><target>" substring of a forecast
// file name, e.g. "011221a021221". Used to label charts.
func DatePairToken(name string) (string, error) {
	m := datePairRe.FindStringSubmatch(name)
	if m == nil {
		return "", NewFormatError(name, "file name has no date pattern", nil)
	}
	return m[1] + m[2] + m[3], nil
}

func splitDatePair(name string) (string, string, error) {
	m := datePairRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", NewFormatError(name, "file name has no date pattern", nil)
	}
	return m[1], m[3], nil
}

// ParseDDMMYY parses a six-digit day-month-year token into a UTC date.
func ParseDDMMYY(s string) (time.Time, error) {
	if len(s) != len(dateLayout) {
		return time.Time{}, NewFormatError(s, "date must have six digits (DDMMYY)", nil)
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, NewFormatError(s, "invalid DDMMYY date", err)
	}
	return t, nil
}

// FormatDDMMYY is the inverse of ParseDDMMYY.
func FormatDDMMYY(t time.Time) string {
	return t.Format(dateLayout)
}

// EncodeFilename builds a forecast file name such as "ETA40_p011221a021221.dat".
func EncodeFilename(model string, dates ForecastDates) string {
	return fmt.Sprintf("%s_p%sa%s%s", model, FormatDDMMYY(dates.Issued), FormatDDMMYY(dates.Target), DataExtension)
}
