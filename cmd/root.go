// Package cmd provides the root command and CLI setup for recweaver.
package cmd

import (
	"context"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/d365fo-tools/recweaver/internal/adapter"
	"github.com/d365fo-tools/recweaver/internal/config"
	"github.com/d365fo-tools/recweaver/internal/domain"
	"github.com/d365fo-tools/recweaver/internal/logger"
)

var workflow domain.Workflow

func init() {
	workflow = domain.NewWorkflow(
		domain.NewScanner(),
		domain.NewNamer(),
		domain.NewRewriter(),
		domain.NewInjector(),
	)
}

var configPathFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recweaver",
		Short: "Record, parameterize and publish D365 F&O browser tests",
		Long: `Recweaver wraps the Playwright test recorder for Dynamics 365 F&O:
it records browser tests, extracts hardcoded input values into named test
variables, injects test metadata, and saves the finished script locally
and/or pushes it to an Azure DevOps Git repository.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "recweaver.yaml", "path to the settings file")

	return cmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadSettings reads the configured settings file layered over defaults.
func loadSettings() (config.Settings, error) {
	return config.Load(configPathFlag)
}

// resolvePAT returns the DevOps personal access token, fetching it from Key
// Vault when configured to do so.
func resolvePAT(ctx context.Context, settings config.Settings, log hclog.Logger) (string, error) {
	if !settings.DevOps.UseKeyVaultPAT || settings.KeyVault.VaultURL == "" {
		return settings.DevOps.PAT, nil
	}

	vault := adapter.NewKeyVaultClient(settings.KeyVault, log)

	return vault.GetSecret(ctx, settings.KeyVault.DevOpsPATSecret)
}

// newStore wires the output store, attaching a DevOps client when the
// integration is enabled.
func newStore(ctx context.Context, settings config.Settings, log hclog.Logger) (adapter.Store, error) {
	var devops adapter.DevOpsClient

	if settings.DevOps.Enabled {
		pat, err := resolvePAT(ctx, settings, log)
		if err != nil {
			return nil, err
		}

		devops = adapter.NewDevOpsClient(settings.DevOps, pat, log)
	}

	return adapter.NewStore(settings, devops, log), nil
}

func newLogger(settings config.Settings) hclog.Logger {
	return logger.New(settings, "recweaver")
}
