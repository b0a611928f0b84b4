package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/karolswdev/jiramcp/internal/jiraclient"
	"github.com/karolswdev/jiramcp/internal/mcpserver"
	"github.com/karolswdev/jiramcp/internal/tools"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Jira MCP server on stdio",
	Long: `Loads the configuration, resolves the Jira API token, opens the shared
HTTP session and serves the tool catalogue over the MCP stdio transport
until the client disconnects or the process receives SIGINT/SIGTERM.

Startup fails fast when the Jira URL, username or API token is missing,
or when the URL is not HTTPS.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRunE(cmd.Context())
	},
}

// serveRunE wires the full lifecycle: config -> token -> session ->
// dispatcher -> stdio server. The session handle is created here and closed
// here; a defer guarantees the release on every exit path, including signal
// driven shutdown, so sockets are never leaked.
func serveRunE(parent context.Context) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.AllowInsecureURL {
		log.Warn().Str("jira_url", config.RedactedURL(cfg.JiraURL)).Msg("allow_insecure_url is set; TLS is not enforced for the Jira URL")
	}

	token, err := config.GetAPIToken()
	if err != nil {
		return fmt.Errorf("failed to resolve Jira API token: %w", err)
	}

	client, err := jiraclient.New(cfg, token)
	if err != nil {
		return fmt.Errorf("failed to create Jira client: %w", err)
	}
	defer client.Close()

	dispatcher := tools.NewDispatcher(client)
	srv := mcpserver.New(dispatcher, version)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("jira_url", config.RedactedURL(cfg.JiraURL)).Msg("Starting Jira MCP server")
	if err := mcpserver.ServeStdio(ctx, srv); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server terminated: %w", err)
	}
	log.Info().Msg("Jira MCP server stopped")
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
