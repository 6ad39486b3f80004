package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/MiladSamani/TaskManager/internal/config"
	"github.com/MiladSamani/TaskManager/internal/logging"
	"github.com/MiladSamani/TaskManager/internal/task"
)

// doctorCommand checks config, task file, schema, and log directory.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

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

	taskPath := dbPath(cfg)
	schema := schemaPath(cfg)

	fmt.Println("Taskman Doctor")
	fmt.Println("==============")
	fmt.Println()

	allOK := true

	// Check working directory
	fmt.Printf("Working directory: %s\n", cfg.WorkDir)
	if _, err := os.Stat(cfg.WorkDir); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check task file
	fmt.Printf("Task file: %s\n", taskPath)
	info, err := os.Stat(taskPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first write)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
		store, loadErr := task.Load(taskPath)
		if loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
		} else {
			result := store.Validate(task.ValidationOptions{SchemaPath: schema})
			for _, w := range result.Warnings {
				fmt.Printf("  ⚠️  %s\n", w)
			}
			if result.Valid {
				fmt.Println("  ✅ Valid")
			} else {
				fmt.Println("  ❌ Validation failed:")
				for _, e := range result.Errors {
					fmt.Printf("     - %v\n", e)
				}
				allOK = false
			}
			if *verbose {
				fmt.Printf("  Tasks: %d\n", len(store.Tasks))
				for i := range store.Tasks {
					fmt.Printf("    - %s\n", store.Tasks[i].Label())
				}
			}
		}
	}
	fmt.Println()

	// Check schema file
	fmt.Printf("Schema file: %s\n", schema)
	if info, err := os.Stat(schema); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (minimal validation checks will be used)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Check log directory
	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.WorkDir)
	if err != nil {
		fmt.Printf("Log directory: %s\n", cfg.LogDir)
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("Log directory: %s\n", logDir)
		if _, err := os.Stat(logDir); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ⚠️  Not found (will be created on first operation)")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
				allOK = false
			}
		} else {
			fmt.Println("  ✅ OK")
		}
	}
	fmt.Println()

	// Check download URL
	fmt.Println("Download URL:")
	if cfg.DownloadURL == "" {
		fmt.Println("  ⚠️  Not configured (pass -url to the download command)")
	} else {
		fmt.Printf("  ✅ %s\n", cfg.DownloadURL)
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Taskman may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}
