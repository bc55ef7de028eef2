// Package config holds runtime configuration, loaded from the environment
// and optionally a YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Log      LogConfig      `yaml:"log"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr         string        `yaml:"addr" env:"SKYWATCH_HTTP_ADDR" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SKYWATCH_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SKYWATCH_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SKYWATCH_HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// DatabaseConfig configures the MySQL connection. Defaults match the
// monitoring schema's local setup.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"SKYWATCH_DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"SKYWATCH_DB_PORT" env-default:"3306"`
	User     string `yaml:"user" env:"SKYWATCH_DB_USER" env-default:"root"`
	Password string `yaml:"password" env:"SKYWATCH_DB_PASSWORD" env-default:""`
	Name     string `yaml:"name" env:"SKYWATCH_DB_NAME" env-default:"weather_monitoring"`
}

// KafkaConfig configures the optional reading consumer. The consumer only
// starts when brokers are set.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers" env:"SKYWATCH_KAFKA_BROKERS"`
	Topic   string   `yaml:"topic" env:"SKYWATCH_KAFKA_TOPIC" env-default:"sensor-readings"`
	GroupID string   `yaml:"group_id" env:"SKYWATCH_KAFKA_GROUP_ID" env-default:"skywatch"`
}

// Enabled reports whether the Kafka ingest source is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level" env:"SKYWATCH_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from the given YAML file, if any, with
// environment variables taking precedence. An empty path loads from the
// environment alone.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}
