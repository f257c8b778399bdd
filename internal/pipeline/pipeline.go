package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"mars-weather-etl/internal/domain"
	"mars-weather-etl/internal/observability"
)

// Extractor reads the raw source table.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawTable, error)
}

// Transformer converts one raw row into a cleaned observation.
type Transformer interface {
	Transform(row domain.RawRow) (domain.Observation, error)
}

// Publisher delivers cleaned observations to an external sink.
type Publisher interface {
	PublishBatch(ctx context.Context, observations []domain.Observation) error
}

// Result is the derived output of one pipeline run: the cleaned observation
// table and the summary views computed from it.
type Result struct {
	Observations []domain.Observation
	Seasonal     []domain.SeasonalAverage
	Opacity      []domain.OpacityCount
	HasOpacity   bool
	Dropped      int
}

// Pipeline orchestrates the extract-clean-aggregate run over one finite
// dataset. Each Run is independent and recomputes everything from the source;
// nothing is maintained incrementally.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	publisher   Publisher // nil when the Kafka sink is disabled
	logger      *slog.Logger
	metrics     *observability.Metrics

	mu     sync.RWMutex
	result *Result
}

// New creates a Pipeline with the given stages and observability. publisher
// may be nil.
func New(e Extractor, t Transformer, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		publisher:   pub,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run executes one extract-clean-aggregate cycle and stores the result for
// the HTTP views. Extract failures (missing source, broken schema) are fatal
// and returned; per-row data issues are absorbed by dropping the row.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	table, err := p.extractor.Extract(ctx)
	if err != nil {
		return nil, err
	}
	p.metrics.RowsRead.Add(float64(len(table.Rows)))

	dataset := p.clean(table)
	result := &Result{
		Observations: dataset.Observations,
		Seasonal:     dataset.AggregateBySeason(),
		HasOpacity:   dataset.HasOpacity,
		Dropped:      len(table.Rows) - len(dataset.Observations),
	}
	result.Opacity, _ = dataset.TallyOpacity()

	if p.publisher != nil && len(result.Observations) > 0 {
		if err := p.publisher.PublishBatch(ctx, result.Observations); err != nil {
			return nil, err
		}
		p.metrics.ObservationsPublished.Add(float64(len(result.Observations)))
	}

	p.mu.Lock()
	p.result = result
	p.mu.Unlock()

	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.metrics.PipelineReady.Set(1)

	p.logger.Info("pipeline run complete",
		"rows_read", len(table.Rows),
		"observations", len(result.Observations),
		"dropped", result.Dropped,
		"seasons", len(result.Seasonal),
		"has_opacity", result.HasOpacity,
	)
	return result, nil
}

// clean applies the row-level transform, dropping rows the transformer
// rejects. Surviving observations keep their relative source order.
func (p *Pipeline) clean(table domain.RawTable) domain.Dataset {
	observations := make([]domain.Observation, 0, len(table.Rows))
	for i, row := range table.Rows {
		obs, err := p.transformer.Transform(row)
		if err != nil {
			p.logger.Warn("dropping row", "row", i, "reason", err)
			p.metrics.RowsDropped.WithLabelValues(dropField(err)).Inc()
			continue
		}
		observations = append(observations, obs)
		p.metrics.ObservationsEmitted.Inc()
		p.metrics.SeasonObservations.WithLabelValues(string(obs.Season)).Inc()
	}
	return domain.Dataset{
		Observations: observations,
		HasOpacity:   table.HasColumn(domain.ColOpacity),
	}
}

// CheckReadiness returns nil once a dataset has been cleaned and aggregated.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.result == nil {
		return errors.New("pipeline has not processed a dataset yet")
	}
	return nil
}

// Result returns the latest run's output, or nil before the first run.
func (p *Pipeline) Result() *Result {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result
}

// dropField extracts the metric label for a rejected row: the first missing
// required field when known, "invalid" otherwise.
func dropField(err error) string {
	var missing *domain.MissingFieldError
	if errors.As(err, &missing) {
		return missing.Column
	}
	return "invalid"
}
