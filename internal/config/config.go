package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// DefaultRegion is used when AWS_REGION is unset.
const DefaultRegion = "us-east-1"

// ErrMissingTable is returned by Load when ORDERS_TABLE_NAME is not set.
var ErrMissingTable = errors.New("ORDERS_TABLE_NAME is not set")

// Config is the process-wide configuration. It is loaded once at startup and
// passed by value to the components that need it.
type Config struct {
	OrdersTable      string
	Region           string
	EndpointOverride string
	MetricsNamespace string
	QueueURL         string
	LogLevel         slog.Level
	RunLocal         bool
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := FromEnv()
	if cfg.OrdersTable == "" {
		return cfg, ErrMissingTable
	}
	return cfg, nil
}

// FromEnv reads the environment without enforcing required values.
func FromEnv() Config {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = DefaultRegion // default fallback
	}

	level, err := ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = slog.LevelInfo
	}

	return Config{
		OrdersTable:      os.Getenv("ORDERS_TABLE_NAME"),
		Region:           region,
		EndpointOverride: os.Getenv("AWS_ENDPOINT_OVERRIDE"),
		MetricsNamespace: os.Getenv("METRICS_NAMESPACE"),
		QueueURL:         os.Getenv("ORDERS_QUEUE_URL"),
		LogLevel:         level,
		RunLocal:         os.Getenv("RUN_LOCAL") == "true",
	}
}

// ParseLevel maps DEBUG/INFO/WARN/ERROR (any case) to a slog level.
// The empty string is INFO.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
