package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// chdir stands in for t.Chdir, which needs Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBFile != DefaultDBFile {
		t.Errorf("DBFile: got %q, want %q", cfg.DBFile, DefaultDBFile)
	}
	if cfg.SchemaFile != DefaultSchemaFile {
		t.Errorf("SchemaFile: got %q, want %q", cfg.SchemaFile, DefaultSchemaFile)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.HTTPTimeoutSeconds != DefaultHTTPTimeoutSeconds {
		t.Errorf("HTTPTimeoutSeconds: got %d, want %d", cfg.HTTPTimeoutSeconds, DefaultHTTPTimeoutSeconds)
	}
	if cfg.WorkDir == "" {
		t.Error("WorkDir should be computed")
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TASKMAN_DB", "/tmp/env-tasks.json")
	t.Setenv("TASKMAN_LOG_LEVEL", "DEBUG")
	t.Setenv("TASKMAN_DOWNLOAD_URL", "https://example.com/tasks.json")
	t.Setenv("TASKMAN_HTTP_TIMEOUT", "5")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBFile != "/tmp/env-tasks.json" {
		t.Errorf("DBFile: got %q, want /tmp/env-tasks.json", cfg.DBFile)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug (normalized)", cfg.LogLevel)
	}
	if cfg.DownloadURL != "https://example.com/tasks.json" {
		t.Errorf("DownloadURL: got %q", cfg.DownloadURL)
	}
	if cfg.HTTPTimeoutSeconds != 5 {
		t.Errorf("HTTPTimeoutSeconds: got %d, want 5", cfg.HTTPTimeoutSeconds)
	}
}

func TestLoadProjectConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	content := `db_file = "project-tasks.json"
log_level = "warn"
download_url = "https://example.com/list.json"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "taskman.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBFile != "project-tasks.json" {
		t.Errorf("DBFile: got %q, want project-tasks.json", cfg.DBFile)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if cfg.DownloadURL != "https://example.com/list.json" {
		t.Errorf("DownloadURL: got %q", cfg.DownloadURL)
	}
}

func TestFlagsOverrideEverything(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TASKMAN_DB", "/tmp/env-tasks.json")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, []string{"-db", "/tmp/flag-tasks.json", "-log-level", "error"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBFile != "/tmp/flag-tasks.json" {
		t.Errorf("DBFile: got %q, want /tmp/flag-tasks.json", cfg.DBFile)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", cfg.LogLevel)
	}
}

func TestDotEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("TASKMAN_DB=dotenv-tasks.json\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets process env; undo it when the test ends
	t.Cleanup(func() { os.Unsetenv("TASKMAN_DB") })

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Load(fs, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBFile != "dotenv-tasks.json" {
		t.Errorf("DBFile: got %q, want dotenv-tasks.json", cfg.DBFile)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/tasks.json", filepath.Join(home, "tasks.json")},
		{"/abs/tasks.json", "/abs/tasks.json"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
