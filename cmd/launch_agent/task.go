package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/launch-orchestrator/internal/pipeline"
)

var (
	taskForce bool
	taskPrint bool
)

var taskCmd = &cobra.Command{
	Use:   "task <startup-id> <task>",
	Short: "Run one task for a startup",
	Long: `Run one task for a startup. The task is skipped when its artifact already
exists unless --force is given. Task names accept camelCase, kebab-case or snake_case.`,
	Args: cobra.ExactArgs(2),
	RunE: runTask,
}

func init() {
	taskCmd.Flags().BoolVarP(&taskForce, "force", "f", false, "Regenerate the artifact even if it exists")
	taskCmd.Flags().BoolVar(&taskPrint, "print", false, "Print the artifact JSON")
	rootCmd.AddCommand(taskCmd)
}

func runTask(cmd *cobra.Command, args []string) error {
	startupID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid startup ID: %w", err)
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	taskID, err := a.registry.ParseTaskID(args[1])
	if err != nil {
		return err
	}

	result, err := a.orchestrator.RunTask(cmd.Context(), startupID, taskID, pipeline.RunTaskOptions{Force: taskForce})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s", result.Task, result.Status)
	if result.Status == pipeline.StatusCompleted {
		fmt.Fprintf(out, " in %s", result.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(out)
	if result.EvaluationURL != "" {
		fmt.Fprintf(out, "evaluation: %s\n", result.EvaluationURL)
	}
	if taskPrint {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Artifact)
	}
	return nil
}
