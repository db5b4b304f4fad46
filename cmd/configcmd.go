package cmd

import (
	"github.com/spf13/cobra"

	"github.com/d365fo-tools/recweaver/internal/config"
)

// configCmd represents the config command group.
var configCmd = newConfigCmd()

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the settings file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Write(configPathFlag, config.Default()); err != nil {
				return err
			}

			cmd.Printf("wrote %s\n", configPathFlag)

			return nil
		},
	})

	return cmd
}

func init() {
	rootCmd.AddCommand(configCmd)
}
