package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// configInitCmd represents the init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default configuration files",
	Long: `Creates the configuration directory (~/.jiramcp by default) and a
commented default config.yaml if one does not already exist. Existing
files are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitRunE(defaultConfigProvider{}, cmd.OutOrStdout())
	},
}

// configInitRunE contains the core logic for the 'config init' command.
func configInitRunE(cfgProvider ConfigProvider, writer io.Writer) error {
	if err := cfgProvider.CreateDefaultConfigFiles(); err != nil {
		log.Error().Err(err).Msg("Failed to create default configuration files")
		return fmt.Errorf("failed to create default configuration files: %w", err)
	}

	configDir, err := cfgProvider.EnsureConfigDir()
	if err != nil {
		return fmt.Errorf("failed to resolve config directory: %w", err)
	}

	fmt.Fprintf(writer, "Configuration initialized in %s\n", configDir)
	fmt.Fprintln(writer, "Edit config.yaml to set jira_url and jira_username,")
	fmt.Fprintln(writer, "then run 'jiramcp config set-key <api-token>' to store your token.")
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
