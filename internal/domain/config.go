package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Session SessionConfig `mapstructure:"session"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// CatalogConfig contains catalog loading and browsing configuration
type CatalogConfig struct {
	// BaseURL is prefixed to relative source names; absolute sources
	// are used as-is.
	BaseURL string `mapstructure:"base_url"`
	// Sources are tried in order: the first is primary, the rest are
	// fallbacks carrying the same schema.
	Sources        []string      `mapstructure:"sources"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// LoadDeadline bounds a whole load sequence across all retries and
	// fallbacks so a failed load can never hang the catalog forever.
	LoadDeadline time.Duration `mapstructure:"load_deadline"`
	PageSize     int           `mapstructure:"page_size"`
	// PriorityTitles overrides the built-in popularity list when set.
	PriorityTitles []string `mapstructure:"priority_titles"`
}

// SessionConfig contains session download tracking configuration
type SessionConfig struct {
	// DatabasePath defaults to ":memory:" so records live exactly as
	// long as the server process.
	DatabasePath string `mapstructure:"database_path"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Catalog: CatalogConfig{
			BaseURL:        "",
			Sources:        []string{"games.json", "gbaroms.json", "sgame.json"},
			MaxRetries:     2,
			RetryDelay:     2 * time.Second,
			RequestTimeout: 8 * time.Second,
			LoadDeadline:   60 * time.Second,
			PageSize:       50,
		},
		Session: SessionConfig{
			DatabasePath: ":memory:",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
