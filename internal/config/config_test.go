package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// writeConfigFile marshals a config document to a temporary YAML file.
func writeConfigFile(t *testing.T, doc map[string]any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Use a non-existent explicit path so the user's config is not picked up
	nonExistentPath := filepath.Join(t.TempDir(), "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error with missing config file, got: %v", err)
	}

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Expected default host '127.0.0.1', got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 65432 {
		t.Errorf("Expected default port 65432, got %d", cfg.Server.Port)
	}
	if cfg.Client.Host != "127.0.0.1" || cfg.Client.Port != 65432 {
		t.Errorf("Expected client defaults 127.0.0.1:65432, got %s:%d", cfg.Client.Host, cfg.Client.Port)
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"logging": map[string]any{
			"level":  "debug",
			"format": "json",
		},
		"server": map[string]any{
			"host": "0.0.0.0",
			"port": 9000,
		},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Level is normalized to uppercase
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level 'DEBUG', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format 'json', got %q", cfg.Logging.Format)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Expected host '0.0.0.0', got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000, got %d", cfg.Server.Port)
	}

	// Unset sections keep their defaults
	if cfg.Client.Port != 65432 {
		t.Errorf("Expected default client port 65432, got %d", cfg.Client.Port)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"server": map[string]any{"port": 9000},
	})

	t.Setenv("ECHOPROTO_SERVER_PORT", "9100")
	t.Setenv("ECHOPROTO_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Expected env override port 9100, got %d", cfg.Server.Port)
	}
	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected env override level 'WARN', got %q", cfg.Logging.Level)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(path, []byte("logging: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		doc  map[string]any
	}{
		{
			name: "BadLogLevel",
			doc:  map[string]any{"logging": map[string]any{"level": "VERBOSE"}},
		},
		{
			name: "BadLogFormat",
			doc:  map[string]any{"logging": map[string]any{"format": "xml"}},
		},
		{
			name: "PortOutOfRange",
			doc:  map[string]any{"server": map[string]any{"port": 70000}},
		},
		{
			name: "NegativePort",
			doc:  map[string]any{"client": map[string]any{"port": -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.doc)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), "validation failed") {
				t.Errorf("Expected a validation error, got: %v", err)
			}
		})
	}
}

func TestApplyDefaults_NormalizesLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "error"

	ApplyDefaults(cfg)

	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Expected normalized level 'ERROR', got %q", cfg.Logging.Level)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Expected default port %d, got %d", DefaultPort, cfg.Server.Port)
	}
}
