package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose routing to MCP clients",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Serve the plan_presentation and route_presentation tools, the variant
catalog and the run history over the Model Context Protocol.

Stdio is used unless --port is given, in which case streamable HTTP is
served on --host:--port. Every routed presentation is recorded in the run
history with source "mcp".

Examples:
  deckroute mcp serve
  deckroute mcp serve --port 8080
  deckroute mcp serve --host 0.0.0.0 --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpServeCmd.Flags().String("host", "localhost", "interface to bind when serving HTTP")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, _ := cmd.Flags().GetInt("port")
	host, _ := cmd.Flags().GetString("host")
	if port < 0 || port > 65535 {
		return fmt.Errorf("--port %d out of range", port)
	}
	if newRouter == nil || newPlanner == nil {
		return fmt.Errorf("mcp: %w", errNotConfigured)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		NewRouter:  newRouter,
		NewPlanner: newPlanner,
		Runs:       runHistory,
		Catalog:    catalogBrowser,
	})
	if err != nil {
		return err
	}

	if port == 0 {
		return server.Run(cmd.Context())
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	cmd.PrintErrf("deckroute MCP server on http://%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
