// Package config defines the service configuration and how it is loaded.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/sport"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`
	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`
	// ShutdownTimeoutMS bounds graceful shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// StoreDriver selects the snapshot store: memory or sqlite.
	StoreDriver string `koanf:"store_driver"`
	// StorePath is the sqlite database file.
	StorePath string `koanf:"store_path"`

	// SaveQueueSize bounds the pending snapshot saves.
	SaveQueueSize int `koanf:"save_queue_size"`
	// SaveDebounceMS coalesces saves of one match within this window.
	SaveDebounceMS int `koanf:"save_debounce_ms"`

	// DedupeSize bounds the remembered command ids.
	DedupeSize int `koanf:"dedupe_size"`

	// Match defaults applied when a create request leaves them out.
	DefaultSport    string `koanf:"default_sport"`
	PerformanceMode bool   `koanf:"performance_mode"`
	HasCourt        bool   `koanf:"has_court"`
	InitialServer   string `koanf:"initial_server"`
	SetsToWin       int    `koanf:"sets_to_win"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		CORSOrigins:       []string{"*"},
		ShutdownTimeoutMS: 5_000,
		StoreDriver:       DriverMemory,
		StorePath:         "courtside.db",
		SaveQueueSize:     1_024,
		SaveDebounceMS:    500,
		DedupeSize:        10_000,
		DefaultSport:      sport.VolleyballID,
		HasCourt:          true,
		InitialServer:     string(model.SideA),
	}
}

// SaveDebounce returns SaveDebounceMS as a duration.
func (c *Config) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMS) * time.Millisecond
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// MatchDefaults returns the match configuration used when a request omits it.
func (c *Config) MatchDefaults() model.MatchConfig {
	return model.MatchConfig{
		Sport:           c.DefaultSport,
		PerformanceMode: c.PerformanceMode,
		HasCourt:        c.HasCourt,
		InitialServer:   model.Side(c.InitialServer),
		Format:          model.Format{SetsToWin: c.SetsToWin},
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.StoreDriver != DriverMemory && c.StoreDriver != DriverSQLite:
		return fmt.Errorf("%w: unknown store_driver %q", ErrInvalidConfig, c.StoreDriver)
	case c.StoreDriver == DriverSQLite && c.StorePath == "":
		return fmt.Errorf("%w: store_path is required for sqlite", ErrInvalidConfig)
	case c.SaveQueueSize <= 0:
		return fmt.Errorf("%w: save_queue_size must be positive", ErrInvalidConfig)
	case c.SaveDebounceMS < 0:
		return fmt.Errorf("%w: save_debounce_ms must not be negative", ErrInvalidConfig)
	case c.DedupeSize <= 0:
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	case c.SetsToWin < 0:
		return fmt.Errorf("%w: sets_to_win must not be negative", ErrInvalidConfig)
	case c.InitialServer != "" && !model.Side(c.InitialServer).Valid():
		return fmt.Errorf("%w: initial_server must be a or b", ErrInvalidConfig)
	case !slices.Contains(sport.Default().IDs(), c.DefaultSport):
		return fmt.Errorf("%w: unknown default_sport %q", ErrInvalidConfig, c.DefaultSport)
	}
	return nil
}
