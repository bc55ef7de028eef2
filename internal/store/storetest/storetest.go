// Package storetest provides an in-memory Store for service and handler
// tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"skywatch/internal/models"
	"skywatch/internal/store"
)

var _ store.Store = (*Fake)(nil)

// Fake is an in-memory Store with the same ordering and windowing semantics
// as the MySQL implementation. Zero value is not usable; call New.
type Fake struct {
	mu sync.Mutex

	Readings []models.Reading
	Rules    []models.AlertRule
	Alerts   []models.AlertEvent

	nextReadingID int64
	nextAlertID   int64

	// Now supplies the store clock; defaults to time.Now.
	Now func() time.Time

	// Error overrides, one per operation, for failure-path tests.
	InsertReadingErr error
	EnabledRulesErr  error
	InsertAlertErr   error
	UpdateRuleErr    error
}

// New creates an empty fake store.
func New() *Fake {
	return &Fake{Now: time.Now}
}

// SeedRule adds a rule with the next free id.
func (f *Fake) SeedRule(t models.AlertType, threshold float64, enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Rules = append(f.Rules, models.AlertRule{
		ID:        int64(len(f.Rules) + 1),
		Type:      t,
		Threshold: threshold,
		Enabled:   enabled,
	})
}

// SeedReading inserts a reading with an explicit timestamp.
func (f *Fake) SeedReading(temperature, humidity float64, ts time.Time) models.Reading {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextReadingID++
	r := models.Reading{
		ID:          f.nextReadingID,
		Temperature: temperature,
		Humidity:    humidity,
		Timestamp:   ts,
	}
	f.Readings = append(f.Readings, r)
	return r
}

func (f *Fake) InsertReading(ctx context.Context, temperature, humidity float64) (models.Reading, error) {
	if f.InsertReadingErr != nil {
		return models.Reading{}, f.InsertReadingErr
	}
	return f.SeedReading(temperature, humidity, f.Now()), nil
}

func (f *Fake) LatestReading(ctx context.Context) (models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Readings) == 0 {
		return models.Reading{}, models.ErrNoData
	}
	latest := f.Readings[0]
	for _, r := range f.Readings[1:] {
		if r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	return latest, nil
}

func (f *Fake) ReadingsSince(ctx context.Context, hours int) ([]models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := f.Now().Add(-time.Duration(hours) * time.Hour)
	out := make([]models.Reading, 0)
	for _, r := range f.Readings {
		if !r.Timestamp.Before(cutoff) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *Fake) StatsSince(ctx context.Context, hours int) (models.Stats, error) {
	rs, err := f.ReadingsSince(ctx, hours)
	if err != nil {
		return models.Stats{}, err
	}
	if len(rs) == 0 {
		return models.Stats{}, models.ErrNoData
	}

	stats := models.Stats{
		Temperature:  metricStats(rs, func(r models.Reading) float64 { return r.Temperature }),
		Humidity:     metricStats(rs, func(r models.Reading) float64 { return r.Humidity }),
		ReadingCount: int64(len(rs)),
		PeriodHours:  hours,
	}
	return stats, nil
}

func metricStats(rs []models.Reading, get func(models.Reading) float64) models.MetricStats {
	min, max, sum := get(rs[0]), get(rs[0]), 0.0
	for _, r := range rs {
		v := get(r)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	return models.MetricStats{Min: min, Max: max, Avg: sum / float64(len(rs))}
}

func (f *Fake) ListRules(ctx context.Context) ([]models.AlertRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]models.AlertRule(nil), f.Rules...)
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (f *Fake) EnabledRules(ctx context.Context) ([]models.AlertRule, error) {
	if f.EnabledRulesErr != nil {
		return nil, f.EnabledRulesErr
	}
	all, _ := f.ListRules(ctx)
	out := make([]models.AlertRule, 0)
	for _, r := range all {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Fake) UpdateRule(ctx context.Context, alertType models.AlertType, threshold float64, enabled bool) (int64, error) {
	if f.UpdateRuleErr != nil {
		return 0, f.UpdateRuleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var affected int64
	for i := range f.Rules {
		if f.Rules[i].Type == alertType {
			f.Rules[i].Threshold = threshold
			f.Rules[i].Enabled = enabled
			affected++
		}
	}
	return affected, nil
}

func (f *Fake) InsertAlert(ctx context.Context, alertType models.AlertType, message string, value float64) error {
	if f.InsertAlertErr != nil {
		return f.InsertAlertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextAlertID++
	f.Alerts = append(f.Alerts, models.AlertEvent{
		ID:        f.nextAlertID,
		Type:      alertType,
		Message:   message,
		Value:     value,
		Timestamp: f.Now(),
	})
	return nil
}

func (f *Fake) OpenAlerts(ctx context.Context, limit int) ([]models.AlertEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.AlertEvent, 0)
	for _, a := range f.Alerts {
		if !a.Acknowledged {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *Fake) AcknowledgeAlert(ctx context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Alerts {
		if f.Alerts[i].ID == id && !f.Alerts[i].Acknowledged {
			f.Alerts[i].Acknowledged = true
			return 1, nil
		}
	}
	return 0, nil
}

func (f *Fake) Ping(ctx context.Context) error { return nil }

func (f *Fake) Close() error { return nil }
