package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKMAN_DB"); v != "" {
		cfg.DBFile = v
	}
	if v := os.Getenv("TASKMAN_SCHEMA"); v != "" {
		cfg.SchemaFile = v
	}
	if v := os.Getenv("TASKMAN_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("TASKMAN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKMAN_DOWNLOAD_URL"); v != "" {
		cfg.DownloadURL = v
	}
	if v := os.Getenv("TASKMAN_HTTP_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPTimeoutSeconds = n
		}
	}
}
