package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply [commands-json]",
	Short: "Apply a command batch",
	Long: `Apply a batch of inventory commands. Example:

  apply '[{"cmd":"addItem","character":"char","item":{"id":"sword","name":"Sword","count":1}}]'`,
	Args: cobra.ExactArgs(1),
	RunE: applyCommands,
}

func applyCommands(cmd *cobra.Command, args []string) error {
	batch, err := parseJSON(args[0])
	if err != nil {
		return err
	}

	client, cleanup, err := createInventoryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{"commands": batch})
	if err != nil {
		return err
	}

	resp, err := client.ApplyCommands(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to apply commands: %w", err)
	}

	return printResponse(resp)
}
