package domain

import (
	"fmt"
	"strings"
	"time"
)

// Canonical column names after header normalization.
const (
	ColDate     = "terrestrial_date"
	ColMinTemp  = "min_temp"
	ColMaxTemp  = "max_temp"
	ColPressure = "pressure"
	ColLS       = "ls"
	ColOpacity  = "atmospheric_opacity"
)

// columnAliases maps legacy source column names to their canonical names.
// Lookups happen after trim/lowercase, so alias matching is effectively
// case- and whitespace-insensitive. Kept as data so new aliases don't touch
// parsing logic.
var columnAliases = map[string]string{
	"atmo_opacity": ColOpacity,
}

// CanonicalColumn normalizes a raw header cell: surrounding whitespace is
// trimmed, the name is lowercased, and known legacy aliases are renamed.
func CanonicalColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := columnAliases[name]; ok {
		return canonical
	}
	return name
}

// RequiredColumns lists the columns that must be present in the source header.
// A header missing any of these is a caller-configuration bug, not bad data,
// and fails the load with a SchemaError.
func RequiredColumns() []string {
	return []string{ColDate, ColMinTemp, ColMaxTemp, ColPressure, ColLS}
}

// RawRow is one source row keyed by canonical column name. Values are raw
// cell text; an absent key and an empty string both mean "no value".
type RawRow map[string]string

// RawTable is the parsed source table before cleaning: rows in source order
// plus the set of columns the header actually carried. Column presence is a
// schema fact individual rows cannot represent (an optional column that never
// existed is not the same as one that is empty everywhere).
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// HasColumn reports whether the source header carried the given canonical column.
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Observation is the canonical cleaned record. Every Observation has a
// parseable date, all four numeric fields present, and a season derived
// from solar longitude. Rows that cannot satisfy this never become
// Observations; they are dropped during normalization.
type Observation struct {
	Date           time.Time `json:"terrestrial_date"`
	Year           int       `json:"year"`
	DayKey         string    `json:"day"`
	MinTemp        float64   `json:"min_temp"`
	MaxTemp        float64   `json:"max_temp"`
	Pressure       float64   `json:"pressure"`
	SolarLongitude float64   `json:"ls"`
	Season         Season    `json:"season"`
	Opacity        string    `json:"atmospheric_opacity,omitempty"`

	ProcessedAt time.Time `json:"processed_at"`
}

// Dataset is the cleaned observation table. HasOpacity records whether the
// optional opacity column existed in the source at all, so consumers can
// distinguish "no opacity data available" from "opacity present but empty".
type Dataset struct {
	Observations []Observation
	HasOpacity   bool
}

// SeasonalAverage holds the arithmetic means of the numeric fields over all
// observations sharing one season.
type SeasonalAverage struct {
	Season   Season  `json:"season"`
	MinTemp  float64 `json:"min_temp"`
	MaxTemp  float64 `json:"max_temp"`
	Pressure float64 `json:"pressure"`
	Count    int     `json:"count"`
}

// OpacityCount is the occurrence count of one atmospheric opacity category.
type OpacityCount struct {
	Opacity string `json:"opacity"`
	Count   int    `json:"count"`
}

// ErrSourceNotFound indicates the input location does not exist or cannot be
// read. Fatal to the load call.
var ErrSourceNotFound = fmt.Errorf("source not found")

// SchemaError indicates a structurally required column is entirely absent
// from the source header. Distinct from per-row missing values, which are
// handled by dropping the row.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required column %q missing from source header", e.Column)
}

// MissingFieldError indicates a required field was absent or unparseable in
// one row. The pipeline absorbs these by excluding the row; they never
// propagate to the caller.
type MissingFieldError struct {
	Column string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row missing required field %q", e.Column)
}
