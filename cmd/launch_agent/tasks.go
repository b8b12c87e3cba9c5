package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the task catalog in pipeline order",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}

func runTasks(cmd *cobra.Command, _ []string) error {
	return printCatalog(cmd, steps.Default())
}

func printCatalog(cmd *cobra.Command, registry *steps.Registry) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTASK\tCATEGORY\tPREREQUISITES")
	for i, def := range registry.InOrder() {
		prereqs := "-"
		if len(def.Prerequisites) > 0 {
			prereqs = strings.Join(types.FieldNames(def.Prerequisites), ", ")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, def.ID, def.Category, prereqs)
	}
	return tw.Flush()
}
