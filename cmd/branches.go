package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/d365fo-tools/recweaver/internal/adapter"
)

// branchesCmd represents the branches command.
var branchesCmd = newBranchesCmd()

func newBranchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "List branches of the configured Azure DevOps repository",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			if !settings.DevOps.Enabled {
				return fmt.Errorf("devops integration is not enabled in the settings file")
			}

			log := newLogger(settings)

			pat, err := resolvePAT(cmd.Context(), settings, log)
			if err != nil {
				return err
			}

			client := adapter.NewDevOpsClient(settings.DevOps, pat, log)

			branches, err := client.Branches(cmd.Context())
			if err != nil {
				return err
			}

			for _, branch := range branches {
				cmd.Println(branch)
			}

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(branchesCmd)
}
