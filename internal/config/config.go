package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all service settings, populated from environment variables.
// The CLI may override individual fields from flags after loading.
type Config struct {
	// openFDA API access.
	APIKey         string        `env:"FDA_API_KEY"`
	BaseURL        string        `env:"FDA_BASE_URL, default=https://api.fda.gov/food/enforcement.json"`
	RequestTimeout time.Duration `env:"FDA_REQUEST_TIMEOUT, default=15s"`

	// HTTP server (serve mode).
	HTTPAddr        string        `env:"HTTP_ADDR, default=:8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogFormat string `env:"LOG_FORMAT, default=json"`

	// Kafka sink (feed mode).
	KafkaBrokers   []string `env:"KAFKA_BROKERS"`
	KafkaSinkTopic string   `env:"KAFKA_SINK_TOPIC, default=recall-enforcement-reports"`

	// Feed scheduling: poll every FeedInterval for reports whose report_date
	// falls within the trailing FeedWindowDays.
	FeedInterval   time.Duration `env:"FEED_INTERVAL, default=6h"`
	FeedWindowDays int           `env:"FEED_WINDOW_DAYS, default=30"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("FDA_BASE_URL must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, errors.New("FDA_REQUEST_TIMEOUT must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.FeedInterval <= 0 {
		return nil, errors.New("FEED_INTERVAL must be positive")
	}
	if cfg.FeedWindowDays <= 0 {
		return nil, errors.New("FEED_WINDOW_DAYS must be positive")
	}

	return &cfg, nil
}

// ValidateFeed checks the settings only feed mode depends on.
func (c *Config) ValidateFeed() error {
	if len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required in feed mode")
	}
	if c.KafkaSinkTopic == "" {
		return errors.New("KAFKA_SINK_TOPIC must not be empty")
	}
	return nil
}
