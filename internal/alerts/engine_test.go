package alerts_test

import (
	"context"
	"errors"
	"testing"

	"skywatch/internal/alerts"
	"skywatch/internal/models"
	"skywatch/internal/store/storetest"
)

func reading(temp, hum float64) models.Reading {
	return models.Reading{ID: 1, Temperature: temp, Humidity: hum}
}

func TestEngineStrictComparison(t *testing.T) {
	tests := []struct {
		name          string
		ruleType      models.AlertType
		threshold     float64
		reading       models.Reading
		wantTriggered int
		wantValue     float64
	}{
		{"temp_high at threshold does not fire", models.AlertTempHigh, 30, reading(30.0, 50), 0, 0},
		{"temp_high above threshold fires", models.AlertTempHigh, 30, reading(30.1, 50), 1, 30.1},
		{"temp_low at threshold does not fire", models.AlertTempLow, 5, reading(5.0, 50), 0, 0},
		{"temp_low below threshold fires", models.AlertTempLow, 5, reading(4.9, 50), 1, 4.9},
		{"humidity_high fires on humidity", models.AlertHumidityHigh, 80, reading(20, 80.5), 1, 80.5},
		{"humidity_low fires on humidity", models.AlertHumidityLow, 30, reading(20, 29.9), 1, 29.9},
		{"humidity_high at threshold does not fire", models.AlertHumidityHigh, 80, reading(20, 80.0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := storetest.New()
			st.SeedRule(tt.ruleType, tt.threshold, true)

			engine := alerts.NewEngine(st, st)
			triggered, err := engine.Evaluate(context.Background(), tt.reading)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if triggered != tt.wantTriggered {
				t.Fatalf("triggered = %d, want %d", triggered, tt.wantTriggered)
			}
			if len(st.Alerts) != tt.wantTriggered {
				t.Fatalf("alert events = %d, want %d", len(st.Alerts), tt.wantTriggered)
			}

			if tt.wantTriggered == 1 {
				event := st.Alerts[0]
				if event.Type != tt.ruleType {
					t.Errorf("event type = %s, want %s", event.Type, tt.ruleType)
				}
				if event.Value != tt.wantValue {
					t.Errorf("event value = %v, want %v", event.Value, tt.wantValue)
				}
				if event.Acknowledged {
					t.Error("new event is acknowledged")
				}
			}
		})
	}
}

func TestEngineMessageFormat(t *testing.T) {
	st := storetest.New()
	st.SeedRule(models.AlertTempHigh, 30, true)
	st.SeedRule(models.AlertHumidityLow, 40, true)

	engine := alerts.NewEngine(st, st)
	if _, err := engine.Evaluate(context.Background(), reading(31.5, 29.9)); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if len(st.Alerts) != 2 {
		t.Fatalf("alert events = %d, want 2", len(st.Alerts))
	}

	messages := map[models.AlertType]string{}
	for _, a := range st.Alerts {
		messages[a.Type] = a.Message
	}

	if got, want := messages[models.AlertTempHigh], "High temperature alert: 31.5°C (threshold: 30°C)"; got != want {
		t.Errorf("temp message = %q, want %q", got, want)
	}
	if got, want := messages[models.AlertHumidityLow], "Low humidity alert: 29.9% (threshold: 40%)"; got != want {
		t.Errorf("humidity message = %q, want %q", got, want)
	}
}

func TestEngineSkipsDisabledRules(t *testing.T) {
	st := storetest.New()
	st.SeedRule(models.AlertTempHigh, 30, false)

	engine := alerts.NewEngine(st, st)
	triggered, err := engine.Evaluate(context.Background(), reading(99, 50))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if triggered != 0 || len(st.Alerts) != 0 {
		t.Errorf("disabled rule fired: triggered=%d events=%d", triggered, len(st.Alerts))
	}
}

func TestEngineNoDedupAcrossReadings(t *testing.T) {
	st := storetest.New()
	st.SeedRule(models.AlertTempHigh, 30, true)

	engine := alerts.NewEngine(st, st)
	for i := 0; i < 3; i++ {
		if _, err := engine.Evaluate(context.Background(), reading(35, 50)); err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
	}

	// A sustained breach produces one event per reading.
	if len(st.Alerts) != 3 {
		t.Errorf("alert events = %d, want 3", len(st.Alerts))
	}
}

func TestEngineReportsInsertFailure(t *testing.T) {
	st := storetest.New()
	st.SeedRule(models.AlertTempHigh, 30, true)
	st.InsertAlertErr = errors.New("insert failed")

	engine := alerts.NewEngine(st, st)
	triggered, err := engine.Evaluate(context.Background(), reading(35, 50))
	if err == nil {
		t.Fatal("Evaluate() error = nil, want insert failure")
	}
	if triggered != 0 {
		t.Errorf("triggered = %d, want 0", triggered)
	}
}

func TestEngineRuleFetchFailure(t *testing.T) {
	st := storetest.New()
	st.EnabledRulesErr = errors.New("rules unavailable")

	engine := alerts.NewEngine(st, st)
	if _, err := engine.Evaluate(context.Background(), reading(35, 50)); err == nil {
		t.Fatal("Evaluate() error = nil, want rule fetch failure")
	}
}
