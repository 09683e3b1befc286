package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Starts a Model Context Protocol server exposing the feedback
dataset to AI assistants: citation resolution, semantic search, source
counts, and the generated report as a resource.

By default the server communicates over stdio. Use --http to serve
over HTTP instead.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if resolverService == nil {
		return errors.New("resolver service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Resolver: resolverService,
		Report:   reportService,
		Dataset:  datasetService,
	})
	if err != nil {
		return fmt.Errorf("mcp: %w", err)
	}

	ctx := cmd.Context()
	if mcpHTTPAddr != "" {
		cmd.Printf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
