// Package main is the entry point for the inventory server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-inventory/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-inventory",
	Short: "RPG inventory tool server",
	Long: `RPG inventory keeps character inventories and stats for a chat conversation and
exposes the mutations as tools a language model can call, over gRPC or MCP.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
