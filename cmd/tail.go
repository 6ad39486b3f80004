package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MiladSamani/TaskManager/internal/config"
	"github.com/MiladSamani/TaskManager/internal/logging"
)

// tailCommand shows the audit log of task operations.
func tailCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskman tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.WorkDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	auditPath := filepath.Join(logDir, "audit.jsonl")
	if _, err := os.Stat(auditPath); os.IsNotExist(err) {
		fmt.Println("No audit log found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", auditPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(os.Stdout, auditPath, *n, *follow)
}
