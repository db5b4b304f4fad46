package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/d365fo-tools/recweaver/internal/adapter"
	"github.com/d365fo-tools/recweaver/internal/controller"
	m "github.com/d365fo-tools/recweaver/internal/model"
)

var (
	recordNameFlag        string
	recordDescriptionFlag string
	recordURLFlag         string
	recordYesFlag         bool
)

// recordCmd represents the record command.
var recordCmd = newRecordCmd()

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a browser test and run it through the pipeline",
		Long: `Record launches the Playwright recorder against the target URL,
captures the browser actions, and hands the cleaned script to the same
review/rewrite/publish pipeline as the process command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if recordNameFlag == "" {
				return fmt.Errorf("a test name is required (--name)")
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}

			log := newLogger(settings)
			recorder := adapter.NewRecorder(settings.Recording, log)

			actions, err := recorder.Record(cmd.Context(), recordURLFlag)
			if err != nil {
				return err
			}

			if actions == "" {
				return fmt.Errorf("recording captured no browser actions")
			}

			retries := 0
			if settings.Recording.AddRetry {
				retries = settings.Recording.RetryCount
			}

			meta := m.TestMetadata{
				Name:                recordNameFlag,
				Description:         recordDescriptionFlag,
				RecordedAt:          time.Now(),
				TargetURL:           recordURLFlag,
				RetryCount:          retries,
				TestTimeoutMS:       settings.Recording.TestTimeoutMS,
				ScreenshotOnFailure: settings.Recording.ScreenshotOnFailure,
			}

			script := adapter.WrapTest(actions, meta.Name)
			ui := controller.NewUI(cmd, controller.IsTTY(os.Stdout), recordYesFlag)

			return runPipeline(cmd, settings, ui, script, meta)
		},
	}
	cmd.Flags().StringVarP(&recordNameFlag, "name", "n", "", "test name")
	cmd.Flags().StringVarP(&recordDescriptionFlag, "description", "d", "", "test description")
	cmd.Flags().StringVarP(&recordURLFlag, "url", "u", "", "target URL to open in the recorder")
	cmd.Flags().BoolVarP(&recordYesFlag, "yes", "y", false, "confirm all proposed variables without interactive review")

	return cmd
}

func init() {
	rootCmd.AddCommand(recordCmd)
}
