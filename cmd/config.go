package cmd

import (
	"github.com/spf13/cobra"

	"github.com/karolswdev/jiramcp/internal/config"
)

// configCmd represents the base config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage jiramcp configuration",
	Long: `Manage the jiramcp configuration: initialize default files, store the
Jira API token in the OS keychain, and inspect the effective settings.`,
}

// ConfigProvider abstracts configuration loading for the config subcommands
// so tests can substitute fakes.
type ConfigProvider interface {
	Load() (*config.Config, error)
	EnsureConfigDir() (string, error)
	CreateDefaultConfigFiles() error
}

// KeyringClient abstracts the OS keychain operations used by the config
// subcommands.
type KeyringClient interface {
	SetAPIToken(token string) error
	GetAPIToken() (string, error)
}

// defaultConfigProvider implements ConfigProvider with the real config package.
type defaultConfigProvider struct{}

func (defaultConfigProvider) Load() (*config.Config, error)     { return config.Load("") }
func (defaultConfigProvider) EnsureConfigDir() (string, error)  { return config.EnsureConfigDir("") }
func (defaultConfigProvider) CreateDefaultConfigFiles() error   { return config.CreateDefaultConfigFiles("") }

// defaultKeyringClient implements KeyringClient with the real keyring-backed functions.
type defaultKeyringClient struct{}

func (defaultKeyringClient) SetAPIToken(token string) error { return config.SetAPIToken(token) }
func (defaultKeyringClient) GetAPIToken() (string, error)   { return config.GetAPIToken() }

func init() {
	rootCmd.AddCommand(configCmd)
}
