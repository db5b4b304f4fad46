package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/d365fo-tools/recweaver/internal/config"
	"github.com/d365fo-tools/recweaver/internal/controller"
	m "github.com/d365fo-tools/recweaver/internal/model"
)

var (
	processNameFlag        string
	processDescriptionFlag string
	processYesFlag         bool
)

// processCmd represents the process command.
var processCmd = newProcessCmd()

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <script.py>",
		Short: "Extract variables from a recorded test and publish it",
		Long: `Process scans a recorded test script for hardcoded input values,
lets you review and rename the proposed variables, rewrites the script to
reference them, injects test metadata, and saves the result to the
configured destinations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read script: %w", err)
			}

			meta := buildMetadata(processNameFlag, processDescriptionFlag, args[0], settings)
			ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout), processYesFlag)

			return runPipeline(cmd, settings, ui, string(raw), meta)
		},
	}
	cmd.Flags().StringVarP(&processNameFlag, "name", "n", "", "test name (defaults to the script file name)")
	cmd.Flags().StringVarP(&processDescriptionFlag, "description", "d", "", "test description")
	cmd.Flags().BoolVarP(&processYesFlag, "yes", "y", false, "confirm all proposed variables without interactive review")

	return cmd
}

func init() {
	rootCmd.AddCommand(processCmd)
}

// buildMetadata assembles the header metadata from flags and settings.
func buildMetadata(name, description, scriptPath string, settings config.Settings) m.TestMetadata {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
	}

	retries := 0
	if settings.Recording.AddRetry {
		retries = settings.Recording.RetryCount
	}

	return m.TestMetadata{
		Name:                name,
		Description:         description,
		RecordedAt:          time.Now(),
		RetryCount:          retries,
		TestTimeoutMS:       settings.Recording.TestTimeoutMS,
		ScreenshotOnFailure: settings.Recording.ScreenshotOnFailure,
	}
}

// runPipeline drives scan/propose/review/rewrite/inject and delivers the
// finished script.
func runPipeline(cmd *cobra.Command, settings config.Settings, ui controller.UI, script string, meta m.TestMetadata) error {
	log := newLogger(settings)

	var reviewed []m.VariableBinding

	result, err := workflow.Process(script, meta, func(bindings []m.VariableBinding) ([]m.VariableBinding, error) {
		out, reviewErr := ui.ReviewBindings(bindings)
		reviewed = out

		return out, reviewErr
	})
	if err != nil {
		return err
	}

	ui.DisplaySummary(workflow.Summary(reviewed))
	log.Debug("pipeline complete", "substitutions", len(result.Substitutions))

	store, err := newStore(cmd.Context(), settings, log)
	if err != nil {
		return err
	}

	fileName := store.FileName(meta.Name, meta.RecordedAt)

	reports, err := store.Save(cmd.Context(), fileName, result.FinalText, "Add recorded test "+meta.Name)
	ui.DisplayReports(reports)

	return err
}
