package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/pipeline"
)

var runForce bool

var runCommand = &cobra.Command{
	Use:   "run <startup-id>",
	Short: "Run every task for a startup in pipeline order",
	Long: `Walks the task catalog in order. Existing artifacts are skipped unless --force
is given. A failed task is reported and the run moves on to the next one.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipelineCmd,
}

func init() {
	runCommand.Flags().BoolVarP(&runForce, "force", "f", false, "Regenerate every artifact")
	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, args []string) error {
	startupID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid startup ID: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	report, runErr := a.runner.Run(ctx, startupID, pipeline.RunnerOptions{
		Force: runForce,
		OnProgress: func(p pipeline.Progress) {
			fmt.Fprintf(out, "[%d/%d] %s\n", p.Index+1, p.Total, p.Message)
		},
	})

	if report != nil && len(report.Outcomes) > 0 {
		observability.NewPrinter(out).PrintReport(reportRows(report), report.Duration)
	}
	if runErr != nil {
		return fmt.Errorf("pipeline stopped: %w", runErr)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", report.Failed, len(report.Outcomes))
	}
	return nil
}
