package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var getStateCmd = &cobra.Command{
	Use:   "get-state",
	Short: "Show the state document of a conversation",
	Args:  cobra.NoArgs,
	RunE:  getState,
}

var renderCmd = &cobra.Command{
	Use:   "render [section]",
	Short: "Show the macro text of a conversation",
	Long:  `Show the macro text for a section: inventory, stats or all (the default).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  renderState,
}

var (
	resetCharName string
	resetUserName string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a conversation over",
	Args:  cobra.NoArgs,
	RunE:  resetConversation,
}

func init() {
	resetCmd.Flags().StringVar(&resetCharName, "char-name", "", "Display name of the character")
	resetCmd.Flags().StringVar(&resetUserName, "user-name", "", "Display name of the user")
}

func getState(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createInventoryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{})
	if err != nil {
		return err
	}

	resp, err := client.GetState(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get state: %w", err)
	}

	return printResponse(resp)
}

func renderState(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createInventoryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fields := map[string]any{}
	if len(args) == 1 {
		fields["section"] = args[0]
	}
	req, err := newRequest(fields)
	if err != nil {
		return err
	}

	resp, err := client.RenderState(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to render state: %w", err)
	}

	fmt.Println(resp.GetFields()["text"].GetStringValue())
	return nil
}

func resetConversation(cmd *cobra.Command, args []string) error {
	client, cleanup, err := createInventoryClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{
		"names": map[string]any{"char": resetCharName, "user": resetUserName},
	})
	if err != nil {
		return err
	}

	resp, err := client.ResetConversation(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to reset conversation: %w", err)
	}

	fmt.Printf("Conversation %s reset\n", conversationID)
	return printResponse(resp)
}
