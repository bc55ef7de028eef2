package models

import (
	"time"
)

// Accepted sensor ranges. Values outside these bounds are rejected before
// anything touches the store.
const (
	MinTemperature = -50.0
	MaxTemperature = 100.0
	MinHumidity    = 0.0
	MaxHumidity    = 100.0
)

// DefaultWindowHours is the trailing window applied to history and stats
// queries when the caller does not specify one.
const DefaultWindowHours = 24

// Reading is a single temperature/humidity sample. ID and Timestamp are
// assigned by the store at write time; a Reading is immutable once written.
type Reading struct {
	ID          int64     `json:"id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Timestamp   time.Time `json:"timestamp"`
}

// ReadingInput is a candidate reading submitted by a sensor device. Pointer
// fields distinguish an absent field from a legitimate zero value.
type ReadingInput struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

// Validate checks presence and range of both fields.
func (in *ReadingInput) Validate() error {
	if in.Temperature == nil || in.Humidity == nil {
		return &ValidationError{
			Field:  "temperature,humidity",
			Reason: "Missing required fields: temperature and humidity",
		}
	}

	if *in.Temperature < MinTemperature || *in.Temperature > MaxTemperature {
		return &ValidationError{
			Field:  "temperature",
			Reason: "Temperature out of valid range (-50 to 100°C)",
		}
	}

	if *in.Humidity < MinHumidity || *in.Humidity > MaxHumidity {
		return &ValidationError{
			Field:  "humidity",
			Reason: "Humidity out of valid range (0 to 100%)",
		}
	}

	return nil
}

// MetricStats holds min/max/avg of one metric over a window, rounded to one
// decimal place.
type MetricStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Stats aggregates readings over a trailing window.
type Stats struct {
	Temperature  MetricStats `json:"temperature"`
	Humidity     MetricStats `json:"humidity"`
	ReadingCount int64       `json:"reading_count"`
	PeriodHours  int         `json:"period_hours"`
}
