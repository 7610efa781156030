package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewConfig builds and validates a Config from the viper instance.
func NewConfig(v *viper.Viper) (Config, error) {
	cfg, err := BuildConfig(v)
	if err != nil {
		return cfg, err
	}
	if err = cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("failed to validate configuration: %w", err)
	}
	return cfg, nil
}

// BuildFlagSet registers every configuration key as a command line flag.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("aqimc-server", pflag.ContinueOnError)
	fs.String(ConfigFileKey, "", "Path to an optional JSON configuration file")
	fs.String(LogLevelKey, defaultLogLevel, "Log level: debug, info, warn or error")
	fs.Uint16(APIPortKey, defaultAPIPort, "Port the cipher API listens on")
	fs.Uint16(MetricsPortKey, defaultMetricsPort, "Port the Prometheus metrics listener uses")
	fs.StringSlice(AllowedOriginsKey, defaultAllowedOrigins, "CORS allowed origins for the API")
	return fs
}

// BuildViper binds the flag set and the environment to a fresh viper
// instance. Flag names map to env var names with the AQIMC_ prefix, and
// hyphens are replaced with underscores. The config file is optional; when
// given it must be JSON.
func BuildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if filename := v.GetString(ConfigFileKey); filename != "" {
		v.SetConfigFile(filename)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func SetDefaultConfigValues(v *viper.Viper) {
	v.SetDefault(LogLevelKey, defaultLogLevel)
	v.SetDefault(APIPortKey, defaultAPIPort)
	v.SetDefault(MetricsPortKey, defaultMetricsPort)
	v.SetDefault(AllowedOriginsKey, defaultAllowedOrigins)
}

// BuildConfig constructs the server config using Viper.
// The following precedence order is used. Each item takes precedence over
// the item below it:
//  1. Flags
//  2. Environment variables
//  3. Config file
//  4. Defaults
//
// Returns the Config
func BuildConfig(v *viper.Viper) (Config, error) {
	// Set default values
	SetDefaultConfigValues(v)

	// Build the config from Viper
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal viper config: %w", err)
	}

	return cfg, nil
}
