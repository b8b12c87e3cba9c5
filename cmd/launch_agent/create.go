package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	createName  string
	createIdea  string
	createOwner string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a startup record from an idea",
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createName, "name", "n", "", "Startup name (required)")
	createCmd.Flags().StringVarP(&createIdea, "idea", "i", "", "One-paragraph idea description (required)")
	createCmd.Flags().StringVar(&createOwner, "owner", "", "Owner user ID (optional)")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("idea")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, _ []string) error {
	owner, err := parseOptionalUUID(createOwner)
	if err != nil {
		return fmt.Errorf("invalid --owner: %w", err)
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	startup, err := a.store.CreateStartup(cmd.Context(), owner, strings.TrimSpace(createName), strings.TrimSpace(createIdea))
	if err != nil {
		return fmt.Errorf("failed to create startup: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), startup.ID)
	return nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
