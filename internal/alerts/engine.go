// Package alerts holds the rule evaluation engine and the rule/alert
// administration service.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"skywatch/internal/logger"
	"skywatch/internal/metrics"
	"skywatch/internal/models"
	"skywatch/internal/store"
)

// Engine evaluates the enabled alert rules against a persisted reading and
// appends one alert event per triggered rule. There is no deduplication or
// rate limiting: a sustained breach raises one event per reading, and the
// dashboard resolves that at query time by showing only unacknowledged
// entries.
type Engine struct {
	rules  store.RuleStore
	events store.AlertStore
	log    zerolog.Logger
}

// NewEngine creates a rule evaluation engine over the given stores.
func NewEngine(rules store.RuleStore, events store.AlertStore) *Engine {
	return &Engine{
		rules:  rules,
		events: events,
		log:    logger.WithComponent("alert_engine"),
	}
}

// Evaluate fetches the enabled rules once and applies each to the reading.
// The single fetch keeps one evaluation pass consistent even if a threshold
// is updated mid-call. All matching rules fire independently; a failed event
// insert does not stop the remaining rules. Returns the number of events
// raised and any insert errors joined together.
func (e *Engine) Evaluate(ctx context.Context, reading models.Reading) (int, error) {
	rules, err := e.rules.EnabledRules(ctx)
	if err != nil {
		return 0, err
	}

	triggered := 0
	var errs []error
	for _, rule := range rules {
		value, message, ok := apply(rule, reading)
		if !ok {
			continue
		}

		if err := e.events.InsertAlert(ctx, rule.Type, message, value); err != nil {
			e.log.Error().Err(err).
				Str("alert_type", string(rule.Type)).
				Int64("reading_id", reading.ID).
				Msg("failed to record alert event")
			errs = append(errs, err)
			continue
		}

		triggered++
		metrics.AlertsTriggered.WithLabelValues(string(rule.Type)).Inc()
		e.log.Info().
			Str("alert_type", string(rule.Type)).
			Float64("value", value).
			Float64("threshold", rule.Threshold).
			Int64("reading_id", reading.ID).
			Msg("alert triggered")
	}

	return triggered, errors.Join(errs...)
}

// apply runs one rule's fixed comparison against the reading. Comparisons
// are strict: a value exactly equal to the threshold never triggers.
func apply(rule models.AlertRule, r models.Reading) (value float64, message string, ok bool) {
	switch rule.Type {
	case models.AlertTempHigh:
		if r.Temperature > rule.Threshold {
			return r.Temperature, fmt.Sprintf("High temperature alert: %s°C (threshold: %s°C)",
				fmtNum(r.Temperature), fmtNum(rule.Threshold)), true
		}
	case models.AlertTempLow:
		if r.Temperature < rule.Threshold {
			return r.Temperature, fmt.Sprintf("Low temperature alert: %s°C (threshold: %s°C)",
				fmtNum(r.Temperature), fmtNum(rule.Threshold)), true
		}
	case models.AlertHumidityHigh:
		if r.Humidity > rule.Threshold {
			return r.Humidity, fmt.Sprintf("High humidity alert: %s%% (threshold: %s%%)",
				fmtNum(r.Humidity), fmtNum(rule.Threshold)), true
		}
	case models.AlertHumidityLow:
		if r.Humidity < rule.Threshold {
			return r.Humidity, fmt.Sprintf("Low humidity alert: %s%% (threshold: %s%%)",
				fmtNum(r.Humidity), fmtNum(rule.Threshold)), true
		}
	}
	return 0, "", false
}

// fmtNum renders a value without trailing zeros, the way the dashboard
// displays it (30 not 30.000000, 30.1 not 30.10).
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
