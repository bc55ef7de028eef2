// Package store provides the persistence layer over the three-table
// monitoring schema: sensor_data, alert_settings, alert_history. The
// interfaces are split by entity so services only receive the stores they
// actually touch.
package store

import (
	"context"

	"skywatch/internal/models"
)

// ReadingStore owns the append-only sensor_data table.
type ReadingStore interface {
	// InsertReading persists a validated reading. The store assigns id and
	// timestamp; the returned Reading carries both.
	InsertReading(ctx context.Context, temperature, humidity float64) (models.Reading, error)

	// LatestReading returns the most recent reading by timestamp.
	// Returns models.ErrNoData when the table is empty.
	LatestReading(ctx context.Context) (models.Reading, error)

	// ReadingsSince returns all readings within the trailing window,
	// ascending by timestamp. An empty window yields an empty slice.
	ReadingsSince(ctx context.Context, hours int) ([]models.Reading, error)

	// StatsSince aggregates min/max/avg over the trailing window.
	// Returns models.ErrNoData when the window holds zero readings.
	StatsSince(ctx context.Context, hours int) (models.Stats, error)
}

// RuleStore owns the alert_settings table.
type RuleStore interface {
	// ListRules returns all rules ordered by alert type.
	ListRules(ctx context.Context) ([]models.AlertRule, error)

	// EnabledRules returns only the rules with enabled = true.
	EnabledRules(ctx context.Context) ([]models.AlertRule, error)

	// UpdateRule sets threshold and enabled on the rule matching the given
	// type and reports the number of rows affected. Zero rows means the
	// type is unknown; that is the caller's call to surface or ignore.
	UpdateRule(ctx context.Context, alertType models.AlertType, threshold float64, enabled bool) (int64, error)
}

// AlertStore owns the alert_history table.
type AlertStore interface {
	// InsertAlert appends one unacknowledged alert event.
	InsertAlert(ctx context.Context, alertType models.AlertType, message string, value float64) error

	// OpenAlerts returns unacknowledged events, newest first, capped at limit.
	OpenAlerts(ctx context.Context, limit int) ([]models.AlertEvent, error)

	// AcknowledgeAlert flips acknowledged to true on the matching event and
	// reports rows affected. Already-acknowledged or unknown ids affect zero
	// rows and are not an error.
	AcknowledgeAlert(ctx context.Context, id int64) (int64, error)
}

// Store is the full persistence surface handed to the server at startup.
type Store interface {
	ReadingStore
	RuleStore
	AlertStore

	Ping(ctx context.Context) error
	Close() error
}
