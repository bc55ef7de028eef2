// Package query serves the dashboard's read operations: current reading,
// windowed history, rolling statistics, and open alerts. All operations are
// pure reads.
package query

import (
	"context"
	"math"

	"skywatch/internal/models"
	"skywatch/internal/store"
)

// openAlertLimit caps the open-alert listing to the most recent entries the
// dashboard shows.
const openAlertLimit = 10

// Service answers the dashboard's polling queries from the stores.
type Service struct {
	readings store.ReadingStore
	events   store.AlertStore
}

// New creates a query service over the given stores.
func New(readings store.ReadingStore, events store.AlertStore) *Service {
	return &Service{
		readings: readings,
		events:   events,
	}
}

// Current returns the most recent reading. Returns models.ErrNoData when no
// readings exist yet.
func (s *Service) Current(ctx context.Context) (models.Reading, error) {
	return s.readings.LatestReading(ctx)
}

// History returns the readings inside the trailing window, oldest first.
// hours must be positive; an empty window is an empty slice, not an error.
func (s *Service) History(ctx context.Context, hours int) ([]models.Reading, error) {
	if hours <= 0 {
		return nil, &models.ValidationError{Field: "hours", Reason: "Invalid hours"}
	}
	return s.readings.ReadingsSince(ctx, hours)
}

// Stats aggregates min/max/avg temperature and humidity over the trailing
// window, rounded to one decimal place. Returns models.ErrNoData when the
// window holds zero readings, since the aggregates are undefined.
func (s *Service) Stats(ctx context.Context, hours int) (models.Stats, error) {
	if hours <= 0 {
		return models.Stats{}, &models.ValidationError{Field: "hours", Reason: "Invalid hours"}
	}

	stats, err := s.readings.StatsSince(ctx, hours)
	if err != nil {
		return models.Stats{}, err
	}

	stats.Temperature = roundMetric(stats.Temperature)
	stats.Humidity = roundMetric(stats.Humidity)
	return stats, nil
}

// OpenAlerts returns the unacknowledged alert events, newest first, capped
// at the dashboard's display limit.
func (s *Service) OpenAlerts(ctx context.Context) ([]models.AlertEvent, error) {
	return s.events.OpenAlerts(ctx, openAlertLimit)
}

func roundMetric(m models.MetricStats) models.MetricStats {
	return models.MetricStats{
		Min: round1(m.Min),
		Max: round1(m.Max),
		Avg: round1(m.Avg),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
