package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/MiladSamani/TaskManager/internal/config"
	"github.com/MiladSamani/TaskManager/internal/remote"
	"github.com/MiladSamani/TaskManager/internal/task"
)

// exportCommand writes the task list to a file or stdout.
func exportCommand(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman export", flag.ContinueOnError)
	out := fs.String("o", "", "Output path ('-' or empty for stdout)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 && *out == "" {
		*out = remaining[0]
	}

	store, err := task.Load(dbPath(cfg))
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	if *out == "" || *out == "-" {
		data, err := json.MarshalIndent(store.Tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal tasks: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if err := store.Save(*out); err != nil {
		return err
	}
	log.Debug().Str("path", *out).Int("count", len(store.Tasks)).Msg("exported tasks")
	fmt.Printf("Exported %d task(s) to %s\n", len(store.Tasks), *out)
	return nil
}

// importCommand replaces or merges the store with tasks from a JSON file.
func importCommand(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman import", flag.ContinueOnError)
	merge := fs.Bool("merge", false, "Append to the store instead of replacing it")
	fileFlag := fs.String("file", "", "Path to the JSON file to import")

	if err := fs.Parse(args); err != nil {
		return err
	}
	importPath := *fileFlag
	remaining := fs.Args()
	if len(remaining) == 1 && importPath == "" {
		importPath = remaining[0]
	} else if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if importPath == "" {
		return fmt.Errorf("missing import file: use 'taskman import <file>'")
	}

	data, err := os.ReadFile(importPath)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	incoming, err := task.ParseTasks(data)
	if err != nil {
		return err
	}

	added, skipped, err := applyIncoming(cfg, incoming, *merge)
	if err != nil {
		return err
	}

	if audit := openAudit(cfg, log); audit != nil {
		audit.Op("import").Str("source", importPath).Bool("merge", *merge).
			Int("added", added).Int("skipped", skipped).Msg("tasks imported")
		audit.Close()
	}

	reportIncoming("Imported", added, skipped, *merge)
	return nil
}

// downloadCommand fetches tasks over HTTP and applies them like import.
func downloadCommand(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman download", flag.ContinueOnError)
	url := fs.String("url", cfg.DownloadURL, "Download source URL")
	merge := fs.Bool("merge", false, "Append to the store instead of replacing it")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 1 && *url == cfg.DownloadURL {
		*url = remaining[0]
	} else if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if *url == "" {
		return fmt.Errorf("missing download url: pass -url or set download_url in config")
	}

	client := remote.NewClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)
	log.Debug().Str("url", *url).Msg("downloading tasks")
	incoming, err := client.FetchTasks(ctx, *url)
	if err != nil {
		return err
	}

	added, skipped, err := applyIncoming(cfg, incoming, *merge)
	if err != nil {
		return err
	}

	if audit := openAudit(cfg, log); audit != nil {
		audit.Op("download").Str("source", *url).Bool("merge", *merge).
			Int("added", added).Int("skipped", skipped).Msg("tasks downloaded")
		audit.Close()
	}

	reportIncoming("Downloaded", added, skipped, *merge)
	return nil
}

// applyIncoming replaces or merges the store with incoming tasks,
// validates the result, and persists it. Nothing is written when the
// incoming set is rejected.
func applyIncoming(cfg *config.Config, incoming []task.Task, merge bool) (added, skipped int, err error) {
	path := dbPath(cfg)
	store, err := task.Load(path)
	if err != nil {
		return 0, 0, fmt.Errorf("loading task file: %w", err)
	}

	if merge {
		added, skipped, err = store.Merge(incoming)
		if err != nil {
			return 0, 0, err
		}
	} else {
		if err := store.Replace(incoming); err != nil {
			return 0, 0, err
		}
		added = len(store.Tasks)
	}

	result := store.Validate(task.ValidationOptions{SchemaPath: schemaPath(cfg)})
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return 0, 0, fmt.Errorf("incoming tasks failed validation")
	}

	if err := store.Save(path); err != nil {
		return 0, 0, err
	}
	return added, skipped, nil
}

func reportIncoming(verb string, added, skipped int, merge bool) {
	if merge {
		fmt.Printf("%s %d task(s), skipped %d duplicate(s)\n", verb, added, skipped)
		return
	}
	fmt.Printf("%s %d task(s)\n", verb, added)
}
