package models

import (
	"time"
)

// AlertType identifies one of the four fixed threshold comparisons.
type AlertType string

const (
	AlertTempHigh     AlertType = "temp_high"
	AlertTempLow      AlertType = "temp_low"
	AlertHumidityHigh AlertType = "humidity_high"
	AlertHumidityLow  AlertType = "humidity_low"
)

// IsValid checks if the alert type is one of the known comparisons.
func (t AlertType) IsValid() bool {
	switch t {
	case AlertTempHigh, AlertTempLow, AlertHumidityHigh, AlertHumidityLow:
		return true
	default:
		return false
	}
}

// AlertRule is a configured threshold with a comparison direction. Exactly
// one rule exists per alert type; rules are seeded at setup and only their
// threshold and enabled fields change at runtime.
type AlertRule struct {
	ID        int64     `json:"id"`
	Type      AlertType `json:"type"`
	Threshold float64   `json:"threshold"`
	Enabled   bool      `json:"enabled"`
}

// AlertEvent records that a rule was breached by a specific reading. Created
// with Acknowledged=false; the only permitted mutation is the one-way
// transition to Acknowledged=true.
type AlertEvent struct {
	ID           int64     `json:"id"`
	Type         AlertType `json:"type"`
	Message      string    `json:"message"`
	Value        float64   `json:"value"`
	Timestamp    time.Time `json:"timestamp"`
	Acknowledged bool      `json:"acknowledged"`
}

// RuleUpdateInput is a request to reconfigure one alert rule. Enabled
// defaults to true when absent, matching the dashboard's settings form.
type RuleUpdateInput struct {
	Type      string   `json:"type"`
	Threshold *float64 `json:"threshold"`
	Enabled   *bool    `json:"enabled"`
}

// Validate checks presence of the required fields.
func (in *RuleUpdateInput) Validate() error {
	if in.Type == "" || in.Threshold == nil {
		return &ValidationError{
			Field:  "type,threshold",
			Reason: "Missing required fields",
		}
	}
	return nil
}

// EnabledOrDefault returns the enabled flag, defaulting to true when absent.
func (in *RuleUpdateInput) EnabledOrDefault() bool {
	if in.Enabled == nil {
		return true
	}
	return *in.Enabled
}

// AckInput is a request to acknowledge one alert event.
type AckInput struct {
	AlertID *int64 `json:"alert_id"`
}

// Validate checks that an alert id was supplied.
func (in *AckInput) Validate() error {
	if in.AlertID == nil {
		return &ValidationError{
			Field:  "alert_id",
			Reason: "Missing alert_id",
		}
	}
	return nil
}
