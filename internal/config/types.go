// Package config handles configuration loading and defaults.
package config

// Default values.
const (
	DefaultDBFile             = "tasks.json"
	DefaultSchemaFile         = "tasks.schema.json"
	DefaultLogDir             = "~/.taskman"
	DefaultLogLevel           = "info"
	DefaultHTTPTimeoutSeconds = 30
)

// Config holds the full configuration for taskman.
type Config struct {
	// Paths
	DBFile     string `toml:"db_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// Download settings
	DownloadURL        string `toml:"download_url"`
	HTTPTimeoutSeconds int    `toml:"http_timeout_seconds"`

	// Logging configuration
	LogLevel string `toml:"log_level"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// setDefaults fills cfg with the default values.
func setDefaults(cfg *Config) {
	cfg.DBFile = DefaultDBFile
	cfg.SchemaFile = DefaultSchemaFile
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.HTTPTimeoutSeconds = DefaultHTTPTimeoutSeconds
}
