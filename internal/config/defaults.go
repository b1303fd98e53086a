package config

import "github.com/runnerr0/mainthread/internal/trace"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MarkerEvent: trace.DefaultMarker,
			Parallelism: 4,
			Top:         10,
		},
		Storage: StorageConfig{
			Path:          "~/.config/mainthread",
			SQLiteFile:    "traces.db",
			MaxTraceBytes: 512 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
