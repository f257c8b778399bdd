// Package export builds renderer-agnostic chart datasets from the cleaned
// observation table and writes them as JSON artifacts. Chart drawing itself
// belongs to whatever visualization tool consumes the files; this package
// only shapes the data each view needs.
package export

import (
	"sort"

	"mars-weather-etl/internal/domain"
)

// TemperaturePoint is one sample of the min/max temperature time series.
type TemperaturePoint struct {
	Date    string  `json:"date"`
	MinTemp float64 `json:"min_temp"`
	MaxTemp float64 `json:"max_temp"`
}

// PressurePoint is one sample of the pressure time series.
type PressurePoint struct {
	Date     string  `json:"date"`
	Pressure float64 `json:"pressure"`
}

// PolarTemperaturePoint is one sample of temperature against solar longitude.
type PolarTemperaturePoint struct {
	SolarLongitude float64 `json:"ls"`
	MinTemp        float64 `json:"min_temp"`
	MaxTemp        float64 `json:"max_temp"`
}

// PolarPressurePoint is one sample of pressure against solar longitude.
type PolarPressurePoint struct {
	SolarLongitude float64 `json:"ls"`
	Pressure       float64 `json:"pressure"`
}

// YearlyFrame is one animation frame: the max-temp series of a single year.
type YearlyFrame struct {
	Year   int              `json:"year"`
	Points []YearlyMaxPoint `json:"points"`
}

// YearlyMaxPoint is one day's max temperature within a yearly frame.
type YearlyMaxPoint struct {
	Day     string  `json:"day"`
	MaxTemp float64 `json:"max_temp"`
}

// TemperatureSeries builds the min/max temperature time series in
// observation order.
func TemperatureSeries(observations []domain.Observation) []TemperaturePoint {
	points := make([]TemperaturePoint, len(observations))
	for i, obs := range observations {
		points[i] = TemperaturePoint{Date: obs.DayKey, MinTemp: obs.MinTemp, MaxTemp: obs.MaxTemp}
	}
	return points
}

// PressureSeries builds the pressure time series in observation order.
func PressureSeries(observations []domain.Observation) []PressurePoint {
	points := make([]PressurePoint, len(observations))
	for i, obs := range observations {
		points[i] = PressurePoint{Date: obs.DayKey, Pressure: obs.Pressure}
	}
	return points
}

// SeasonComparison returns the per-season averages in the fixed display
// order Spring, Summer, Autumn, Winter, Unknown, keeping only realized
// seasons.
func SeasonComparison(averages []domain.SeasonalAverage) []domain.SeasonalAverage {
	bySeason := make(map[domain.Season]domain.SeasonalAverage, len(averages))
	for _, avg := range averages {
		bySeason[avg.Season] = avg
	}

	ordered := make([]domain.SeasonalAverage, 0, len(averages))
	for _, season := range domain.SeasonOrder {
		if avg, ok := bySeason[season]; ok {
			ordered = append(ordered, avg)
		}
	}
	return ordered
}

// PolarTemperature builds the temperature-vs-ls polar series, sorted
// ascending by solar longitude so the trace sweeps the orbit once.
func PolarTemperature(observations []domain.Observation) []PolarTemperaturePoint {
	sorted := sortBySolarLongitude(observations)
	points := make([]PolarTemperaturePoint, len(sorted))
	for i, obs := range sorted {
		points[i] = PolarTemperaturePoint{
			SolarLongitude: obs.SolarLongitude,
			MinTemp:        obs.MinTemp,
			MaxTemp:        obs.MaxTemp,
		}
	}
	return points
}

// PolarPressure builds the pressure-vs-ls polar series, sorted ascending by
// solar longitude.
func PolarPressure(observations []domain.Observation) []PolarPressurePoint {
	sorted := sortBySolarLongitude(observations)
	points := make([]PolarPressurePoint, len(sorted))
	for i, obs := range sorted {
		points[i] = PolarPressurePoint{SolarLongitude: obs.SolarLongitude, Pressure: obs.Pressure}
	}
	return points
}

// YearlyMaxTemperature groups the max-temp series into one frame per
// calendar year, frames sorted by year, points in observation order within
// each frame.
func YearlyMaxTemperature(observations []domain.Observation) []YearlyFrame {
	byYear := make(map[int][]YearlyMaxPoint)
	for _, obs := range observations {
		byYear[obs.Year] = append(byYear[obs.Year], YearlyMaxPoint{Day: obs.DayKey, MaxTemp: obs.MaxTemp})
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	frames := make([]YearlyFrame, 0, len(years))
	for _, year := range years {
		frames = append(frames, YearlyFrame{Year: year, Points: byYear[year]})
	}
	return frames
}

func sortBySolarLongitude(observations []domain.Observation) []domain.Observation {
	sorted := make([]domain.Observation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SolarLongitude < sorted[j].SolarLongitude
	})
	return sorted
}
