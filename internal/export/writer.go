package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mars-weather-etl/internal/domain"
	"mars-weather-etl/internal/observability"
)

// Artifact filenames written into the export directory.
const (
	FileTemperature      = "temperature.json"
	FilePressure         = "pressure.json"
	FileOpacity          = "opacity.json"
	FileSeasonComparison = "season_comparison.json"
	FileAnimatedMaxTemp  = "animated_temperature.json"
	FilePolarTemperature = "polar_temperature.json"
	FilePolarPressure    = "polar_pressure.json"
)

// Writer writes chart dataset artifacts as JSON files into a directory.
type Writer struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWriter creates a Writer targeting dir. The directory is created on the
// first WriteAll call.
func NewWriter(dir string, logger *slog.Logger, metrics *observability.Metrics) *Writer {
	return &Writer{dir: dir, logger: logger, metrics: metrics}
}

// opacityArtifact is the serialized opacity dataset. Available stays false
// when the source never carried the opacity column, so renderers can skip
// the chart instead of drawing an empty one. Counts must not carry omitempty:
// a present-but-empty column serializes as "counts": [], which renderers
// read differently from no opacity data at all.
type opacityArtifact struct {
	Available bool                  `json:"available"`
	Counts    []domain.OpacityCount `json:"counts"`
}

// WriteAll derives every chart dataset from the cleaned table and writes one
// JSON file per view.
func (w *Writer) WriteAll(ds domain.Dataset) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	opacity := opacityArtifact{}
	if counts, ok := ds.TallyOpacity(); ok {
		opacity.Available = true
		opacity.Counts = counts
		if opacity.Counts == nil {
			opacity.Counts = []domain.OpacityCount{}
		}
	}

	artifacts := map[string]any{
		FileTemperature:      TemperatureSeries(ds.Observations),
		FilePressure:         PressureSeries(ds.Observations),
		FileOpacity:          opacity,
		FileSeasonComparison: SeasonComparison(ds.AggregateBySeason()),
		FileAnimatedMaxTemp:  YearlyMaxTemperature(ds.Observations),
		FilePolarTemperature: PolarTemperature(ds.Observations),
		FilePolarPressure:    PolarPressure(ds.Observations),
	}

	for name, data := range artifacts {
		if err := w.writeFile(name, data); err != nil {
			return err
		}
		w.metrics.ArtifactsExported.Inc()
	}

	w.logger.Info("chart datasets exported", "dir", w.dir, "artifacts", len(artifacts))
	return nil
}

func (w *Writer) writeFile(name string, data any) error {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
