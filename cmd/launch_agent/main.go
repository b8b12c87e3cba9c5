// Package main provides the entry point for the launch orchestrator CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	databaseURL string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "launch_agent",
	Short: "Launch orchestrator for startup ideas",
	Long: `Launch orchestrator turns a startup idea into a sequence of generated artifacts:
brainstorm, market research, brand, business plan, pitch deck and more.

Tasks run one at a time (task), as a whole pipeline (run), or through the REST API (serve).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
