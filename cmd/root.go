// Package cmd implements the CLI command structure for taskman.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MiladSamani/TaskManager/internal/config"
	"github.com/MiladSamani/TaskManager/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskman CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskman", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	log := logging.Setup(cfg.LogLevel)

	// Determine the subcommand
	// If no args or first arg is a flag, use "list" as default
	subcommand := "list"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "list", "ls":
		return listCommand(cfg, log, remainingArgs)
	case "add":
		return addCommand(cfg, log, remainingArgs)
	case "edit":
		return editCommand(cfg, log, remainingArgs)
	case "delete":
		return deleteCommand(cfg, log, remainingArgs)
	case "delete-all":
		return deleteAllCommand(cfg, log, remainingArgs)
	case "export":
		return exportCommand(cfg, log, remainingArgs)
	case "import":
		return importCommand(cfg, log, remainingArgs)
	case "download":
		return downloadCommand(ctx, cfg, log, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// If it's not a recognized command, it might be a task file path
		// for list. Check if it's an existing file
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.DBFile = subcommand
			return listCommand(cfg, log, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// dbPath resolves the task file path against the working directory.
func dbPath(cfg *config.Config) string {
	if filepath.IsAbs(cfg.DBFile) {
		return cfg.DBFile
	}
	return filepath.Join(cfg.WorkDir, cfg.DBFile)
}

// schemaPath resolves the schema file path against the working directory.
func schemaPath(cfg *config.Config) string {
	if cfg.SchemaFile == "" || filepath.IsAbs(cfg.SchemaFile) {
		return cfg.SchemaFile
	}
	return filepath.Join(cfg.WorkDir, cfg.SchemaFile)
}

// openAudit opens the audit log for mutating commands. Audit failures
// are reported but never block the operation itself.
func openAudit(cfg *config.Config, log zerolog.Logger) *logging.AuditLogger {
	audit, err := logging.NewAuditLogger(cfg.LogDir, cfg.WorkDir)
	if err != nil {
		log.Warn().Err(err).Msg("audit log unavailable")
		return nil
	}
	return audit
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskman version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskman - A personal task tracker backed by a JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskman [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list          List tasks (default command)")
	fmt.Fprintln(w, "  add <title>   Add a new task")
	fmt.Fprintln(w, "  edit          Edit a task's title or completion state")
	fmt.Fprintln(w, "  delete        Delete a task by id")
	fmt.Fprintln(w, "  delete-all    Delete every task")
	fmt.Fprintln(w, "  export        Write the task list to a file or stdout")
	fmt.Fprintln(w, "  import <file> Import tasks from a JSON file")
	fmt.Fprintln(w, "  download      Download tasks from a URL")
	fmt.Fprintln(w, "  init          Create a task file, schema, and config in the current directory")
	fmt.Fprintln(w, "  tui           Launch the terminal UI viewer")
	fmt.Fprintln(w, "  doctor        Check config, task file, and schema validity")
	fmt.Fprintln(w, "  tail          Show the audit log of task operations")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -pending      Show only pending tasks")
	fmt.Fprintln(w, "  -completed    Show only completed tasks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Edit Options (use with 'edit' command):")
	fmt.Fprintln(w, "  -id int       Task id to edit (required)")
	fmt.Fprintln(w, "  -title string New title")
	fmt.Fprintln(w, "  -complete     Mark the task completed")
	fmt.Fprintln(w, "  -uncomplete   Mark the task pending")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Import/Download Options:")
	fmt.Fprintln(w, "  -merge        Append to the store instead of replacing it")
	fmt.Fprintln(w, "  -url string   Download source URL (download only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
