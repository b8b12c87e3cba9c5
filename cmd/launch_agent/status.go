package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/pipeline"
)

var statusCmd = &cobra.Command{
	Use:   "status <startup-id>",
	Short: "Show the task board for a startup",
	Long: `Shows every task with its state: done (✓), locked behind the previous task (🔒),
ready to run (→), or waiting on prerequisites (·).`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	startupID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid startup ID: %w", err)
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	startup, err := a.store.GetStartup(cmd.Context(), startupID)
	if err != nil {
		return fmt.Errorf("failed to load startup: %w", err)
	}
	if startup == nil {
		return &pipeline.RecordNotFoundError{StartupID: startupID}
	}

	states := pipeline.LockStates(a.registry, startup)
	observability.NewPrinter(cmd.OutOrStdout()).PrintBoard(startup.Name, boardRows(states))
	return nil
}
