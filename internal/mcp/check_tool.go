package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/fndecl/internal/config"
	"github.com/mvp-joe/fndecl/internal/report"
	"github.com/mvp-joe/fndecl/internal/runner"
	"github.com/mvp-joe/fndecl/internal/sniff"
)

// CheckToolName is the registered name of the check tool.
const CheckToolName = "fndecl_check"

// CheckRequest holds the fndecl_check arguments.
type CheckRequest struct {
	Path    string   `json:"path"`
	Format  string   `json:"format,omitempty"`
	Include []string `json:"include,omitempty"`
}

// AddCheckTool registers the fndecl_check tool with an MCP server.
func AddCheckTool(s *server.MCPServer, r *runner.Runner, cfg *config.Config, rootDir string) {
	tool := mcp.NewTool(
		CheckToolName,
		mcp.WithDescription("Check PHP function and closure declarations for formatting violations: keyword and parenthesis spacing, multi-line parameter layout, and opening brace placement. Returns the violations found in a file or directory."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File or directory to check, absolute or relative to the project root")),
		mcp.WithString("format",
			mcp.Description("Output format: 'json' (default) or 'text'")),
		mcp.WithArray("include",
			mcp.Description("Glob patterns overriding the configured include patterns when checking a directory (e.g. ['src/**/*.php'])")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createCheckHandler(r, cfg, rootDir))
}

func createCheckHandler(r *runner.Runner, cfg *config.Config, rootDir string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req CheckRequest
		if err := coerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if req.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}
		if req.Format == "" {
			req.Format = "json"
		}

		target := req.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(rootDir, target)
		}

		include := req.Include
		if len(include) == 0 {
			include = cfg.Paths.Include
		}
		paths, err := runner.ResolveTargets(target, include, cfg.Paths.Ignore)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := r.CheckFiles(ctx, paths)
		if err != nil {
			var cfgErr *sniff.ConfigError
			if errors.As(err, &cfgErr) {
				return nil, err
			}
			return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
		}

		var buf bytes.Buffer
		if err := report.Write(&buf, req.Format, report.New(result, rootDir, 0)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(strings.TrimRight(buf.String(), "\n")), nil
	}
}
