// Package ingest implements the single write path for sensor readings:
// validate, persist, then evaluate alert rules against the new reading.
package ingest

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"skywatch/internal/logger"
	"skywatch/internal/metrics"
	"skywatch/internal/models"
	"skywatch/internal/store"
)

// Evaluator runs the alert rules against a persisted reading.
type Evaluator interface {
	Evaluate(ctx context.Context, reading models.Reading) (int, error)
}

// Service validates and persists readings. Rule evaluation runs
// synchronously after the write but is best-effort: once the reading is
// durable, an evaluation failure is logged and counted, never returned.
type Service struct {
	readings  store.ReadingStore
	evaluator Evaluator
	log       zerolog.Logger

	// Counters for the periodic stats report
	accepted  atomic.Uint64
	rejected  atomic.Uint64
	triggered atomic.Uint64
}

// Stats is a snapshot of the service's counters.
type Stats struct {
	Accepted        uint64
	Rejected        uint64
	AlertsTriggered uint64
}

// New creates an ingestion service over the given reading store and
// evaluator.
func New(readings store.ReadingStore, evaluator Evaluator) *Service {
	return &Service{
		readings:  readings,
		evaluator: evaluator,
		log:       logger.WithComponent("ingest"),
	}
}

// Submit validates the candidate reading, persists it, and evaluates the
// alert rules. Returns the persisted reading with its store-assigned id and
// timestamp. Validation and store failures reject the reading; nothing is
// saved in that case.
func (s *Service) Submit(ctx context.Context, in models.ReadingInput) (models.Reading, error) {
	if err := in.Validate(); err != nil {
		s.rejected.Add(1)
		return models.Reading{}, err
	}

	reading, err := s.readings.InsertReading(ctx, *in.Temperature, *in.Humidity)
	if err != nil {
		s.rejected.Add(1)
		return models.Reading{}, err
	}
	s.accepted.Add(1)

	// The reading is durable at this point. Alerting must not undo that.
	triggered, err := s.evaluator.Evaluate(ctx, reading)
	if err != nil {
		metrics.AlertEvaluationFailures.Inc()
		s.log.Error().Err(err).
			Int64("reading_id", reading.ID).
			Msg("rule evaluation failed, reading kept")
	}
	s.triggered.Add(uint64(triggered))

	return reading, nil
}

// Stats returns a snapshot of the ingestion counters.
func (s *Service) Stats() Stats {
	return Stats{
		Accepted:        s.accepted.Load(),
		Rejected:        s.rejected.Load(),
		AlertsTriggered: s.triggered.Load(),
	}
}
