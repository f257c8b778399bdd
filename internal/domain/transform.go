package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the accepted terrestrial_date formats, tried in order.
// The REMS export uses plain ISO dates; older extracts carried a time
// component or US-style slashes.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// BuildObservation converts one raw row into a cleaned Observation.
//
// A row survives only if terrestrial_date parses and min_temp, max_temp,
// pressure, and ls are all present and numeric. The first missing field is
// returned as a MissingFieldError; callers drop the row and continue rather
// than failing the load. An unparseable date counts as a missing date.
func BuildObservation(row RawRow) (Observation, error) {
	date, ok := parseDate(row[ColDate])
	if !ok {
		return Observation{}, &MissingFieldError{Column: ColDate}
	}

	minTemp, ok := parseFloat(row[ColMinTemp])
	if !ok {
		return Observation{}, &MissingFieldError{Column: ColMinTemp}
	}
	maxTemp, ok := parseFloat(row[ColMaxTemp])
	if !ok {
		return Observation{}, &MissingFieldError{Column: ColMaxTemp}
	}
	pressure, ok := parseFloat(row[ColPressure])
	if !ok {
		return Observation{}, &MissingFieldError{Column: ColPressure}
	}
	ls, ok := parseFloat(row[ColLS])
	if !ok {
		return Observation{}, &MissingFieldError{Column: ColLS}
	}

	return Observation{
		Date:           date,
		Year:           date.Year(),
		DayKey:         date.Format("2006-01-02"),
		MinTemp:        minTemp,
		MaxTemp:        maxTemp,
		Pressure:       pressure,
		SolarLongitude: ls,
		Season:         ClassifySeason(ls),
		Opacity:        strings.TrimSpace(row[ColOpacity]),
		ProcessedAt:    clock.Now(),
	}, nil
}

// parseDate tries the known terrestrial_date layouts. Dates are calendar
// dates, timezone-naive; parsed in UTC so day boundaries are stable.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFloat parses a required numeric cell. Empty, non-numeric, and
// non-finite values all report missing: a literal "NaN" or "Inf" cell is a
// sentinel for absent data, and letting it through would poison the seasonal
// means and break JSON export.
func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
