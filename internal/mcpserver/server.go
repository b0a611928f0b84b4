// Package mcpserver exposes the Jira tool catalogue over the Model Context
// Protocol. It owns the tool schema declarations and the thin adaptation
// between MCP tool calls and the dispatcher: argument mappings go in, JSON
// text content or a tool-level error comes back. Dispatcher failures are
// returned as tool results, not protocol errors, so the calling agent sees
// them and can correct the invocation.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/karolswdev/jiramcp/internal/tools"
)

// ServerName identifies this server to MCP clients.
const ServerName = "jiramcp"

// New builds the MCP server with the full Jira tool catalogue registered
// against the given dispatcher.
func New(dispatcher *tools.Dispatcher, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	definitions := toolDefinitions()
	for _, name := range tools.Names() {
		tool, ok := definitions[name]
		if !ok {
			// Catalogue and schema declarations have drifted; this is a
			// programming error, not a runtime condition.
			panic(fmt.Sprintf("mcpserver: no schema declared for tool %q", name))
		}
		srv.AddTool(tool, makeHandler(dispatcher))
	}

	log.Debug().Int("tools", len(definitions)).Msg("Registered MCP tool catalogue")
	return srv
}

// makeHandler adapts the dispatcher to the mcp-go handler signature. The
// tool name is taken from the request, so one adapter serves the whole
// catalogue and dispatch stays in a single place.
func makeHandler(dispatcher *tools.Dispatcher) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.Params.Name
		log.Debug().Str("tool", name).Msg("Tool call received")

		result, err := dispatcher.Dispatch(ctx, name, req.GetArguments())
		if err != nil {
			// The dispatcher already logged the redacted failure detail.
			return mcp.NewToolResultError(err.Error()), nil
		}

		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Error().Err(err).Str("tool", name).Msg("Failed to marshal tool result")
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}

// ServeStdio runs the server over stdin/stdout until the client disconnects
// or the context is cancelled.
func ServeStdio(ctx context.Context, srv *server.MCPServer) error {
	stdio := server.NewStdioServer(srv)
	log.Info().Str("server", ServerName).Msg("Serving MCP over stdio")
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}
