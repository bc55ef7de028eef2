package config_test

import (
	"testing"

	"skywatch/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != 3306 {
		t.Errorf("unexpected database defaults: %+v", cfg.Database)
	}
	if cfg.Database.Name != "weather_monitoring" {
		t.Errorf("Database.Name = %q, want weather_monitoring", cfg.Database.Name)
	}
	if cfg.Kafka.Enabled() {
		t.Error("kafka enabled without brokers")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKYWATCH_HTTP_ADDR", ":9090")
	t.Setenv("SKYWATCH_DB_NAME", "weather_test")
	t.Setenv("SKYWATCH_KAFKA_BROKERS", "broker-1:9092,broker-2:9092")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.Database.Name != "weather_test" {
		t.Errorf("Database.Name = %q, want weather_test", cfg.Database.Name)
	}
	if !cfg.Kafka.Enabled() || len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("unexpected kafka config: %+v", cfg.Kafka)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load("/nonexistent/config.yaml"); err == nil {
		t.Error("Load() error = nil for missing file")
	}
}
