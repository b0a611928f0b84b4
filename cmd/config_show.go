package cmd

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/karolswdev/jiramcp/internal/config"
	"github.com/spf13/cobra"
)

// configShowCmd represents the show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Displays the configuration jiramcp would use, after merging the config
file and environment variables. The API token itself is never printed;
only whether one is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRunE(defaultConfigProvider{}, defaultKeyringClient{}, cmd.OutOrStdout())
	},
}

// effectiveConfig is the YAML shape rendered by 'config show'.
type effectiveConfig struct {
	JiraURL          string `yaml:"jira_url"`
	JiraUsername     string `yaml:"jira_username"`
	AllowInsecureURL bool   `yaml:"allow_insecure_url"`
	APIToken         string `yaml:"api_token"`
}

// configShowRunE contains the core logic for the 'config show' command.
func configShowRunE(cfgProvider ConfigProvider, kc KeyringClient, writer io.Writer) error {
	cfg, err := cfgProvider.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	tokenStatus := "set"
	if _, err := kc.GetAPIToken(); err != nil {
		if !errors.Is(err, config.ErrAPITokenNotFound) {
			return fmt.Errorf("failed to check API token: %w", err)
		}
		tokenStatus = "not set"
	}

	out := effectiveConfig{
		JiraURL:          config.RedactedURL(cfg.JiraURL),
		JiraUsername:     cfg.JiraUsername,
		AllowInsecureURL: cfg.AllowInsecureURL,
		APIToken:         tokenStatus,
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}

	fmt.Fprint(writer, string(data))
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
