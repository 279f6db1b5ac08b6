// Package mcp exposes the declaration checker as an MCP tool over stdio.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/fndecl/internal/config"
	"github.com/mvp-joe/fndecl/internal/runner"
)

// Server manages the MCP server lifecycle.
type Server struct {
	runner *runner.Runner
	mcp    *server.MCPServer
}

// NewServer creates an MCP server with the check tool registered.
func NewServer(cfg *config.Config, rootDir, version string) (*Server, error) {
	r, err := runner.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"fndecl-mcp",
		version,
		server.WithToolCapabilities(true),
	)
	AddCheckTool(mcpServer, r, cfg, rootDir)

	return &Server{runner: r, mcp: mcpServer}, nil
}

// Serve runs the server on stdio until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the runner's cache.
func (s *Server) Close() {
	s.runner.Close()
}
