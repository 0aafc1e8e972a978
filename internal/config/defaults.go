package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Default connection endpoint, shared by server and client.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 65432
)

// setDefaults registers every configuration key with viper. Registering
// the keys up front is what lets ECHOPROTO_* environment variables
// override values that appear in no config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("client.host", DefaultHost)
	v.SetDefault("client.port", DefaultPort)
}

// ApplyDefaults fills any remaining zero values and normalizes fields
// after unmarshalling.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)

	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Client.Host == "" {
		cfg.Client.Host = DefaultHost
	}
	if cfg.Client.Port == 0 {
		cfg.Client.Port = DefaultPort
	}
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}
