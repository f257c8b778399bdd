// Command genfixtures generates a synthetic mars-weather CSV fixture plus the
// expected cleaned JSON, using the actual domain package so the expected
// output matches real pipeline behavior. The fixture covers all four seasons,
// an out-of-range ls row (Unknown season), and rows that the conjunctive drop
// filter must exclude.
//
// Usage:
//
//	go run ./cmd/genfixtures -csv-out testdata/mars-weather.csv -json-out testdata/expected.json
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"mars-weather-etl/internal/domain"
)

// fixtureRows is the raw CSV content: deliberately messy header casing, one
// row per season, one Unknown-season row, and three rows the cleaner must
// drop (blank pressure, blank ls, unparseable date).
var header = []string{"Terrestrial_Date", " Min_Temp ", "MAX_TEMP", "Pressure", "LS", "ATMO_OPACITY"}

var fixtureRows = [][]string{
	{"2015-01-10", "-82", "-25", "880", "261.1", "Sunny"},  // Autumn
	{"2015-05-20", "-80", "-28", "872", "341.2", "Sunny"},  // Winter
	{"2015-10-01", "-76", "-22", "745", "44.5", "Sunny"},   // Spring
	{"2016-03-15", "-71", "-15", "712", "122.8", "Cloudy"}, // Summer
	{"2016-03-16", "-70", "-14", "713", "361.0", "Sunny"},  // Unknown: ls out of canonical range
	{"2016-03-17", "-70", "-14", "", "123.9", "Sunny"},     // dropped: pressure missing
	{"2016-03-18", "-69", "-13", "714", "", "Sunny"},       // dropped: ls missing
	{"not a date", "-68", "-12", "715", "124.4", "Sunny"},  // dropped: date unparseable
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	csvOut := flag.String("csv-out", "", "output path for the CSV fixture")
	jsonOut := flag.String("json-out", "", "output path for the expected cleaned JSON")
	flag.Parse()

	if *csvOut == "" || *jsonOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -csv-out, -json-out")
	}

	// Freeze the clock for reproducible processed_at stamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2016, time.April, 1, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	if err := writeCSV(*csvOut); err != nil {
		return err
	}

	observations, dropped := cleanFixture()
	if err := writeJSON(*jsonOut, observations); err != nil {
		return err
	}

	log.Printf("fixture: %d raw rows, %d observations, %d dropped", len(fixtureRows), len(observations), dropped)
	return nil
}

func writeCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv fixture: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range fixtureRows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// cleanFixture runs the domain cleaning over the fixture rows the same way
// the pipeline does.
func cleanFixture() ([]domain.Observation, int) {
	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = domain.CanonicalColumn(name)
	}

	var observations []domain.Observation
	dropped := 0
	for _, record := range fixtureRows {
		row := make(domain.RawRow, len(columns))
		for i, value := range record {
			row[columns[i]] = value
		}
		obs, err := domain.BuildObservation(row)
		if err != nil {
			dropped++
			continue
		}
		observations = append(observations, obs)
	}
	return observations, dropped
}

func writeJSON(path string, observations []domain.Observation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create fixture dir: %w", err)
	}
	payload, err := json.MarshalIndent(observations, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal expected observations: %w", err)
	}
	return os.WriteFile(path, payload, 0o644)
}
