// Command studentbook is a command-driven address book for tutors: persons
// with grades, attributes and scheduled lessons, stored in a JSON file,
// BadgerDB, PostgreSQL or Redis.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Flag values shared by every subcommand.
var (
	flagConfig   string
	flagStorage  string
	flagData     string
	flagLogLevel string
)

var (
	rootCmd = &cobra.Command{
		Use:   "studentbook",
		Short: "A command-driven address book for tutors and their students",
		Long: `studentbook keeps contacts, grades, attributes and lessons of students.

Run without arguments for the interactive shell. When standard input is not a
terminal, one command is read per line instead.`,
		SilenceUsage: true,
		RunE:         runShell,
	}

	execCmd = &cobra.Command{
		Use:   "exec COMMAND_LINE...",
		Short: "Execute command lines and exit",
		Example: `  studentbook exec "grade 1 sub/MATH/WA1/89"
  studentbook exec "tag 1 attr/subject=math" "list"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExec,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Print every person and exit",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "YAML config file (default $STUDENTBOOK_CONFIG or studentbook.yaml)")
	pf.StringVar(&flagStorage, "storage", "", "storage driver: json, badger, postgres or redis")
	pf.StringVar(&flagData, "data", "", "data file (json) or directory (badger)")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
