package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MiladSamani/TaskManager/internal/config"
	"github.com/MiladSamani/TaskManager/internal/task"
	"github.com/MiladSamani/TaskManager/internal/ui"
)

// defaultSchema is written by taskman init and used to validate
// imported and downloaded task lists.
const defaultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "taskman task file",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "completed"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "title": {"type": "string", "minLength": 3},
      "completed": {"type": "boolean"}
    },
    "additionalProperties": false
  }
}
`

// exampleConfig is the starter project config written by taskman init.
const exampleConfig = `# taskman configuration
# Values here override ~/.taskman/taskman.toml and are overridden by
# TASKMAN_* environment variables and CLI flags.

db_file = "tasks.json"
schema_file = "tasks.schema.json"
log_level = "info"

# download_url = "https://example.com/tasks.json"
`

// initCommand creates the task file, schema, and config in the working
// directory. Existing files are left alone.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman init", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	taskPath := dbPath(cfg)
	if _, err := os.Stat(taskPath); os.IsNotExist(err) {
		store := &task.Store{}
		if err := store.Save(taskPath); err != nil {
			return fmt.Errorf("creating task file: %w", err)
		}
		fmt.Printf("Created %s\n", taskPath)
	} else {
		fmt.Printf("Exists  %s\n", taskPath)
	}

	schema := schemaPath(cfg)
	if _, err := os.Stat(schema); os.IsNotExist(err) {
		if err := os.WriteFile(schema, []byte(defaultSchema), 0644); err != nil {
			return fmt.Errorf("creating schema file: %w", err)
		}
		fmt.Printf("Created %s\n", schema)
	} else {
		fmt.Printf("Exists  %s\n", schema)
	}

	configPath := filepath.Join(cfg.WorkDir, "taskman.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
			return fmt.Errorf("creating config file: %w", err)
		}
		fmt.Printf("Created %s\n", configPath)
	} else {
		fmt.Printf("Exists  %s\n", configPath)
	}

	return nil
}

// tuiCommand launches the terminal UI viewer.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.DBFile = remaining[0]
	}

	return ui.RunTUI(ctx, dbPath(cfg))
}
