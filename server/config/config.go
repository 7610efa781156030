// Package config loads and validates the AQIMC server configuration from
// flags, environment variables and an optional JSON config file.
package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

const (
	defaultLogLevel    = "info"
	defaultAPIPort     = uint16(5000)
	defaultMetricsPort = uint16(9090)
)

var defaultAllowedOrigins = []string{"*"}

// Config holds the runtime settings for the HTTP adapter. The API and
// metrics listeners are split so the metrics port can stay private.
type Config struct {
	LogLevel       string   `mapstructure:"log-level" json:"log-level"`
	APIPort        uint16   `mapstructure:"api-port" json:"api-port"`
	MetricsPort    uint16   `mapstructure:"metrics-port" json:"metrics-port"`
	AllowedOrigins []string `mapstructure:"allowed-origins" json:"allowed-origins"`
}

// Validate returns an error if the configuration cannot produce a working
// server.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.APIPort == 0 {
		return fmt.Errorf("api port must be non-zero")
	}
	if c.MetricsPort == 0 {
		return fmt.Errorf("metrics port must be non-zero")
	}
	if c.APIPort == c.MetricsPort {
		return fmt.Errorf("api port and metrics port must differ, both are %d", c.APIPort)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin is required")
	}
	return nil
}
