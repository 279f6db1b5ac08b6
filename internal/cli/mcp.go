package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/fndecl/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server exposing the declaration checker",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can
check PHP declarations while editing.

The MCP server:
- Provides the fndecl_check tool for files and directories
- Uses the project configuration from .fndecl/config.yml
- Communicates via stdio (standard MCP transport)

Example:
  fndecl mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := loadConfig(projectPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "fndecl MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project: %s\n\n", projectPath)

	server, err := mcp.NewServer(cfg, projectPath, Version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
