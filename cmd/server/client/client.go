// Package client provides test commands for the inventory gRPC service
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-inventory/internal/handlers/api/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	conversationID string
)

// ClientCmd is the root command for all client test commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Test client commands for the inventory service",
	Long:  `Client commands allow you to test the inventory service by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	ClientCmd.PersistentFlags().StringVar(&conversationID, "conversation", "default", "Conversation to act on")

	ClientCmd.AddCommand(applyCmd)
	ClientCmd.AddCommand(invokeCmd)
	ClientCmd.AddCommand(getStateCmd)
	ClientCmd.AddCommand(renderCmd)
	ClientCmd.AddCommand(resetCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createInventoryClient creates an inventory service client
func createInventoryClient() (v1alpha1.InventoryServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewInventoryServiceClient(conn), cleanup, nil
}

// newRequest builds a Struct request from a JSON-shaped map
func newRequest(fields map[string]any) (*structpb.Struct, error) {
	fields["conversation_id"] = conversationID
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

// parseJSON reads a command line JSON argument
func parseJSON(arg string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return nil, fmt.Errorf("invalid JSON %q: %w", arg, err)
	}
	return v, nil
}

func printResponse(resp *structpb.Struct) error {
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
