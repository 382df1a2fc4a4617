package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-inventory/internal/config"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the function tool definitions as JSON",
	Long:  `Print every tool's name, display name, description and draft-04 parameter schema, ready to register with a host.`,
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{Storage: config.StorageMemory}

	a, err := buildApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(a.registry.Definitions(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tool definitions: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
