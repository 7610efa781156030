package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"

	// Top-level configuration keys
	LogLevelKey       = "log-level"
	APIPortKey        = "api-port"
	MetricsPortKey    = "metrics-port"
	AllowedOriginsKey = "allowed-origins"
)

// EnvPrefix is prepended to configuration keys when they are read from the
// environment, so api-port becomes AQIMC_API_PORT.
const EnvPrefix = "aqimc"
