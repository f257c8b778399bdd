package pipeline

import (
	"mars-weather-etl/internal/domain"
)

// ObservationTransformer implements Transformer using the domain cleaning
// rules.
type ObservationTransformer struct{}

// NewTransformer creates an ObservationTransformer.
func NewTransformer() *ObservationTransformer {
	return &ObservationTransformer{}
}

func (t *ObservationTransformer) Transform(row domain.RawRow) (domain.Observation, error) {
	return domain.BuildObservation(row)
}
