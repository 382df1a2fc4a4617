package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	charName string
	userName string
)

var invokeCmd = &cobra.Command{
	Use:   "invoke [tool] [arguments-json]",
	Short: "Call a function tool by name",
	Long: `Call one of the registered function tools. Examples:

  invoke addItemToInventory '{"owner":"char","id":"rope","name":"Rope","count":1}'
  invoke equipItem '{"owner":"char","wearer":"user","id":"rope"}'`,
	Args: cobra.ExactArgs(2),
	RunE: invokeTool,
}

func init() {
	invokeCmd.Flags().StringVar(&charName, "char-name", "", "Display name of the character, used in the toast")
	invokeCmd.Flags().StringVar(&userName, "user-name", "", "Display name of the user, used in the toast")
}

func invokeTool(cmd *cobra.Command, args []string) error {
	arguments, err := parseJSON(args[1])
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

	req, err := newRequest(map[string]any{
		"name":      args[0],
		"arguments": arguments,
		"names":     map[string]any{"char": charName, "user": userName},
	})
	if err != nil {
		return err
	}

	resp, err := client.InvokeTool(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", args[0], err)
	}

	return printResponse(resp)
}
