package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"skywatch/internal/metrics"
	"skywatch/internal/models"
)

// Compile-time check
var _ Store = (*MySQL)(nil)

// Options holds the parameters for connecting to the monitoring database.
type Options struct {
	// Host is the MySQL server address
	Host string
	// Port is the server port (default 3306)
	Port int
	// User is the database user
	User string
	// Password is the user's password
	Password string
	// Database is the schema name (default weather_monitoring)
	Database string
	// Timeout is the dial timeout
	Timeout time.Duration
	// MaxOpenConns caps the connection pool (default 10)
	MaxOpenConns int
}

// MySQL implements Store over the original weather_monitoring schema.
type MySQL struct {
	db *sql.DB
}

// Open connects to MySQL with the given options and verifies the connection.
func Open(ctx context.Context, opts Options) (*MySQL, error) {
	if opts.Host == "" {
		opts.Host = "localhost"
	}
	if opts.Port == 0 {
		opts.Port = 3306
	}
	if opts.Port < 1 || opts.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", opts.Port)
	}
	if opts.User == "" {
		opts.User = "root"
	}
	if opts.Database == "" {
		opts.Database = "weather_monitoring"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 10
	}

	cfg := mysql.NewConfig()
	cfg.Addr = fmt.Sprintf("%s:%d", opts.Host, opts.Port)
	cfg.Net = "tcp"
	cfg.User = opts.User
	cfg.Passwd = opts.Password
	cfg.DBName = opts.Database
	cfg.Timeout = opts.Timeout
	// Scan DATETIME columns into time.Time in the store's local zone, the
	// same clock that assigns them.
	cfg.ParseTime = true
	cfg.Loc = time.Local

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, &models.StoreError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &models.StoreError{Op: "ping", Err: err}
	}

	return &MySQL{db: db}, nil
}

// Ping verifies the connection is still alive.
func (s *MySQL) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &models.StoreError{Op: "ping", Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (s *MySQL) Close() error {
	return s.db.Close()
}

func observe(op string, start time.Time) {
	metrics.StoreQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// InsertReading appends a reading and reads back the store-assigned row.
func (s *MySQL) InsertReading(ctx context.Context, temperature, humidity float64) (models.Reading, error) {
	defer observe("insert_reading", time.Now())

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO sensor_data (temperature, humidity) VALUES (?, ?)",
		temperature, humidity,
	)
	if err != nil {
		return models.Reading{}, &models.StoreError{Op: "insert_reading", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Reading{}, &models.StoreError{Op: "insert_reading", Err: err}
	}

	// Read back the timestamp the store assigned.
	var ts time.Time
	err = s.db.QueryRowContext(ctx,
		"SELECT timestamp FROM sensor_data WHERE id = ?", id,
	).Scan(&ts)
	if err != nil {
		return models.Reading{}, &models.StoreError{Op: "insert_reading", Err: err}
	}

	return models.Reading{
		ID:          id,
		Temperature: temperature,
		Humidity:    humidity,
		Timestamp:   ts,
	}, nil
}

// LatestReading returns the newest reading by timestamp.
func (s *MySQL) LatestReading(ctx context.Context) (models.Reading, error) {
	defer observe("latest_reading", time.Now())

	var r models.Reading
	err := s.db.QueryRowContext(ctx,
		"SELECT id, temperature, humidity, timestamp FROM sensor_data ORDER BY timestamp DESC LIMIT 1",
	).Scan(&r.ID, &r.Temperature, &r.Humidity, &r.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Reading{}, models.ErrNoData
	}
	if err != nil {
		return models.Reading{}, &models.StoreError{Op: "latest_reading", Err: err}
	}
	return r, nil
}

// ReadingsSince returns readings inside the trailing window, oldest first.
func (s *MySQL) ReadingsSince(ctx context.Context, hours int) ([]models.Reading, error) {
	defer observe("readings_since", time.Now())

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, temperature, humidity, timestamp FROM sensor_data "+
			"WHERE timestamp >= DATE_SUB(NOW(), INTERVAL ? HOUR) ORDER BY timestamp ASC",
		hours,
	)
	if err != nil {
		return nil, &models.StoreError{Op: "readings_since", Err: err}
	}
	defer rows.Close()

	readings := make([]models.Reading, 0)
	for rows.Next() {
		var r models.Reading
		if err := rows.Scan(&r.ID, &r.Temperature, &r.Humidity, &r.Timestamp); err != nil {
			return nil, &models.StoreError{Op: "readings_since", Err: err}
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "readings_since", Err: err}
	}
	return readings, nil
}

// StatsSince aggregates the trailing window in a single query, mirroring the
// dashboard's stats view. Aggregates come back NULL for an empty window, so
// the count decides between data and ErrNoData.
func (s *MySQL) StatsSince(ctx context.Context, hours int) (models.Stats, error) {
	defer observe("stats_since", time.Now())

	var (
		tMin, tMax, tAvg sql.NullFloat64
		hMin, hMax, hAvg sql.NullFloat64
		count            int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT MIN(temperature), MAX(temperature), AVG(temperature), "+
			"MIN(humidity), MAX(humidity), AVG(humidity), COUNT(*) FROM sensor_data "+
			"WHERE timestamp >= DATE_SUB(NOW(), INTERVAL ? HOUR)",
		hours,
	).Scan(&tMin, &tMax, &tAvg, &hMin, &hMax, &hAvg, &count)
	if err != nil {
		return models.Stats{}, &models.StoreError{Op: "stats_since", Err: err}
	}

	if count == 0 {
		return models.Stats{}, models.ErrNoData
	}

	return models.Stats{
		Temperature: models.MetricStats{
			Min: tMin.Float64,
			Max: tMax.Float64,
			Avg: tAvg.Float64,
		},
		Humidity: models.MetricStats{
			Min: hMin.Float64,
			Max: hMax.Float64,
			Avg: hAvg.Float64,
		},
		ReadingCount: count,
		PeriodHours:  hours,
	}, nil
}

// ListRules returns every alert rule ordered by type.
func (s *MySQL) ListRules(ctx context.Context) ([]models.AlertRule, error) {
	defer observe("list_rules", time.Now())
	return s.queryRules(ctx,
		"SELECT id, alert_type, threshold, enabled FROM alert_settings ORDER BY alert_type")
}

// EnabledRules returns the rules that drive alert generation.
func (s *MySQL) EnabledRules(ctx context.Context) ([]models.AlertRule, error) {
	defer observe("enabled_rules", time.Now())
	return s.queryRules(ctx,
		"SELECT id, alert_type, threshold, enabled FROM alert_settings WHERE enabled = 1 ORDER BY alert_type")
}

func (s *MySQL) queryRules(ctx context.Context, query string) ([]models.AlertRule, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &models.StoreError{Op: "query_rules", Err: err}
	}
	defer rows.Close()

	rules := make([]models.AlertRule, 0)
	for rows.Next() {
		var r models.AlertRule
		if err := rows.Scan(&r.ID, &r.Type, &r.Threshold, &r.Enabled); err != nil {
			return nil, &models.StoreError{Op: "query_rules", Err: err}
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "query_rules", Err: err}
	}
	return rules, nil
}

// UpdateRule reconfigures the unique rule for a type. The alert_type column
// is unique, so this affects at most one row; zero rows means the type is
// not seeded.
func (s *MySQL) UpdateRule(ctx context.Context, alertType models.AlertType, threshold float64, enabled bool) (int64, error) {
	defer observe("update_rule", time.Now())

	res, err := s.db.ExecContext(ctx,
		"UPDATE alert_settings SET threshold = ?, enabled = ? WHERE alert_type = ?",
		threshold, enabled, string(alertType),
	)
	if err != nil {
		return 0, &models.StoreError{Op: "update_rule", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, &models.StoreError{Op: "update_rule", Err: err}
	}
	return affected, nil
}

// InsertAlert appends one unacknowledged alert event.
func (s *MySQL) InsertAlert(ctx context.Context, alertType models.AlertType, message string, value float64) error {
	defer observe("insert_alert", time.Now())

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO alert_history (alert_type, message, value) VALUES (?, ?, ?)",
		string(alertType), message, value,
	)
	if err != nil {
		return &models.StoreError{Op: "insert_alert", Err: err}
	}
	return nil
}

// OpenAlerts returns unacknowledged events, newest first.
func (s *MySQL) OpenAlerts(ctx context.Context, limit int) ([]models.AlertEvent, error) {
	defer observe("open_alerts", time.Now())

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, alert_type, message, value, timestamp, acknowledged FROM alert_history "+
			"WHERE acknowledged = 0 ORDER BY timestamp DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, &models.StoreError{Op: "open_alerts", Err: err}
	}
	defer rows.Close()

	alerts := make([]models.AlertEvent, 0)
	for rows.Next() {
		var a models.AlertEvent
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.Value, &a.Timestamp, &a.Acknowledged); err != nil {
			return nil, &models.StoreError{Op: "open_alerts", Err: err}
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "open_alerts", Err: err}
	}
	return alerts, nil
}

// AcknowledgeAlert marks an event as seen. The transition is one-way and
// idempotent at this layer: re-acknowledging affects zero rows.
func (s *MySQL) AcknowledgeAlert(ctx context.Context, id int64) (int64, error) {
	defer observe("acknowledge_alert", time.Now())

	res, err := s.db.ExecContext(ctx,
		"UPDATE alert_history SET acknowledged = 1 WHERE id = ? AND acknowledged = 0",
		id,
	)
	if err != nil {
		return 0, &models.StoreError{Op: "acknowledge_alert", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, &models.StoreError{Op: "acknowledge_alert", Err: err}
	}
	return affected, nil
}
