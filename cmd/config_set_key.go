package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// configSetKeyCmd represents the set-key command
var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [api-token]",
	Short: "Store the Jira API token securely in the OS keychain",
	Long: `Stores the Jira API token in the operating system's keychain or keyring.
This is the recommended way to configure the token for jiramcp; the
JIRAMCP_JIRA_API_TOKEN environment variable works as a fallback on hosts
without a keychain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetKeyRunE(defaultKeyringClient{}, cmd.OutOrStdout(), args[0])
	},
}

// configSetKeyRunE contains the core logic for the 'config set-key' command.
// The token value is never logged.
func configSetKeyRunE(kc KeyringClient, writer io.Writer, token string) error {
	if token == "" {
		return errors.New("API token cannot be empty")
	}

	if err := kc.SetAPIToken(token); err != nil {
		log.Error().Err(err).Msg("Failed to store API token in keychain")
		return fmt.Errorf("failed to store API token in keychain: %w", err)
	}

	fmt.Fprintln(writer, "API token stored successfully.")
	return nil
}

func init() {
	configCmd.AddCommand(configSetKeyCmd)
}
