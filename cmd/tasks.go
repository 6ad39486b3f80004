package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MiladSamani/TaskManager/internal/config"
	"github.com/MiladSamani/TaskManager/internal/task"
)

// listCommand prints tasks, pending before completed, ascending id.
func listCommand(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman list", flag.ContinueOnError)
	pendingOnly := fs.Bool("pending", false, "Show only pending tasks")
	completedOnly := fs.Bool("completed", false, "Show only completed tasks")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pendingOnly && *completedOnly {
		return fmt.Errorf("-pending and -completed are mutually exclusive")
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.DBFile = remaining[0]
	}

	path := dbPath(cfg)
	log.Debug().Str("db", path).Msg("loading task file")
	store, err := task.Load(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	if len(store.Tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	pending := store.Filter(func(t *task.Task) bool { return !t.Completed })
	completed := store.Filter(func(t *task.Task) bool { return t.Completed })
	task.SortByID(pending)
	task.SortByID(completed)

	if !*completedOnly {
		printTaskGroup("pending", pending)
	}
	if !*pendingOnly {
		printTaskGroup("completed", completed)
	}

	return nil
}

// printTaskGroup prints a labeled group of tasks.
func printTaskGroup(label string, tasks []task.Task) {
	if len(tasks) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, len(tasks))
	for i := range tasks {
		icon := "📝"
		if tasks[i].Completed {
			icon = "✅"
		}
		fmt.Printf("  %s #%d %s\n", icon, tasks[i].ID, tasks[i].Title)
	}
	fmt.Println()
}

// addCommand creates a new task.
func addCommand(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman add", flag.ContinueOnError)
	titleFlag := fs.String("title", "", "Task title")

	if err := fs.Parse(args); err != nil {
		return err
	}

	title := *titleFlag
	if title == "" {
		title = strings.Join(fs.Args(), " ")
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("missing title: use 'taskman add <title>'")
	}

	path := dbPath(cfg)
	store, err := task.Load(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	added, err := store.Add(task.Task{Title: title})
	if err != nil {
		return err
	}
	if err := store.Save(path); err != nil {
		return err
	}

	if audit := openAudit(cfg, log); audit != nil {
		audit.Op("add").Int("id", added.ID).Str("title", added.Title).Msg("task added")
		audit.Close()
	}

	fmt.Printf("Added task #%d: %s\n", added.ID, added.Title)
	return nil
}

// editCommand updates a task's title or completion state.
func editCommand(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman edit", flag.ContinueOnError)
	id := fs.Int("id", 0, "Task id to edit (required)")
	title := fs.String("title", "", "New title")
	complete := fs.Bool("complete", false, "Mark the task completed")
	uncomplete := fs.Bool("uncomplete", false, "Mark the task pending")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("missing or invalid -id")
	}
	if *complete && *uncomplete {
		return fmt.Errorf("-complete and -uncomplete are mutually exclusive")
	}
	if *title == "" && !*complete && !*uncomplete {
		return fmt.Errorf("nothing to edit: pass -title, -complete, or -uncomplete")
	}

	path := dbPath(cfg)
	store, err := task.Load(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	err = store.Update(*id, func(t *task.Task) {
		if *title != "" {
			t.Title = *title
		}
		if *complete {
			t.Completed = true
		}
		if *uncomplete {
			t.Completed = false
		}
	})
	if err != nil {
		return err
	}
	if err := store.Save(path); err != nil {
		return err
	}

	updated := store.Get(*id)
	if audit := openAudit(cfg, log); audit != nil {
		audit.Op("edit").Int("id", updated.ID).Str("title", updated.Title).
			Bool("completed", updated.Completed).Msg("task updated")
		audit.Close()
	}

	fmt.Printf("Updated task %s\n", updated.Label())
	return nil
}

// deleteCommand removes a task by id.
func deleteCommand(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman delete", flag.ContinueOnError)
	id := fs.Int("id", 0, "Task id to delete (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return fmt.Errorf("missing or invalid -id")
	}

	path := dbPath(cfg)
	store, err := task.Load(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	// Delete before any write so a missing id leaves the file untouched
	if err := store.Delete(*id); err != nil {
		return err
	}
	if err := store.Save(path); err != nil {
		return err
	}

	if audit := openAudit(cfg, log); audit != nil {
		audit.Op("delete").Int("id", *id).Msg("task deleted")
		audit.Close()
	}

	fmt.Printf("Deleted task #%d\n", *id)
	return nil
}

// deleteAllCommand truncates the store.
func deleteAllCommand(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("taskman delete-all", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := dbPath(cfg)
	store, err := task.Load(path)
	if err != nil {
		return fmt.Errorf("loading task file: %w", err)
	}

	count := len(store.Tasks)
	store.DeleteAll()
	if err := store.Save(path); err != nil {
		return err
	}

	if audit := openAudit(cfg, log); audit != nil {
		audit.Op("delete-all").Int("count", count).Msg("all tasks deleted")
		audit.Close()
	}

	fmt.Printf("Deleted %d task(s)\n", count)
	return nil
}
