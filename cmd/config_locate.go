package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// configLocateCmd represents the locate command
var configLocateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the configuration directory path",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configLocateRunE(defaultConfigProvider{}, cmd.OutOrStdout())
	},
}

// configLocateRunE contains the core logic for the 'config locate' command.
func configLocateRunE(cfgProvider ConfigProvider, writer io.Writer) error {
	dir, err := cfgProvider.EnsureConfigDir()
	if err != nil {
		return fmt.Errorf("failed to locate configuration directory: %w", err)
	}

	fmt.Fprintln(writer, dir)
	return nil
}

func init() {
	configCmd.AddCommand(configLocateCmd)
}
