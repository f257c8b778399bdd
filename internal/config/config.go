package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	CSVPath         string        `envconfig:"CSV_PATH" required:"true"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Chart dataset export.
	ExportEnabled bool   `envconfig:"EXPORT_ENABLED" default:"true"`
	ExportDir     string `envconfig:"EXPORT_DIR" default:"exports"`

	// Optional Kafka sink for cleaned observations.
	KafkaEnabled   bool     `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers   []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaSinkTopic string   `envconfig:"KAFKA_SINK_TOPIC" default:"mars-weather-observations"`
}

// Load reads configuration from environment variables, applying defaults
// where unset, and validates cross-field constraints.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.ExportEnabled && cfg.ExportDir == "" {
		return nil, errors.New("EXPORT_ENABLED is true but EXPORT_DIR is not set")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
		}
		if cfg.KafkaSinkTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SINK_TOPIC is not set")
		}
	}

	return &cfg, nil
}
