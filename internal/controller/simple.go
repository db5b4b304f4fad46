package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// SimpleUI implements UI using cobra Command's output. It cannot prompt;
// review succeeds only in auto-confirm mode.
type SimpleUI struct {
	cmd         *cobra.Command
	autoConfirm bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, autoConfirm bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, autoConfirm: autoConfirm}
}

// ReviewBindings displays the proposed bindings and, in auto-confirm mode,
// confirms every one of them unchanged.
func (s *SimpleUI) ReviewBindings(bindings []m.VariableBinding) ([]m.VariableBinding, error) {
	if err := s.DisplayBindings(bindings); err != nil {
		return nil, err
	}

	if !s.autoConfirm {
		return nil, fmt.Errorf("interactive review requires a terminal; re-run with --yes to confirm all proposed variables")
	}

	confirmed := make([]m.VariableBinding, len(bindings))
	for i, binding := range bindings {
		binding.UserConfirmed = true
		confirmed[i] = binding
	}

	return confirmed, nil
}

// DisplayBindings prints the proposed variable table.
func (s *SimpleUI) DisplayBindings(bindings []m.VariableBinding) error {
	if len(bindings) == 0 {
		s.printf("No input values detected\n")
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Variable", "Value", "Occurrences"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	total := 0

	for _, binding := range bindings {
		table.Append([]string{
			binding.VariableName,
			binding.CanonicalValue,
			fmt.Sprintf("%d", len(binding.Occurrences)),
		})

		total += len(binding.Occurrences)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Variables %d", len(bindings)),
		"",
		fmt.Sprintf("%d", total),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplaySummary prints the review outcome totals.
func (s *SimpleUI) DisplaySummary(summary m.ReviewSummary) {
	s.printf("%d input values -> %d variables (%d confirmed, %d skipped)\n",
		summary.TotalInputs, summary.Variables, summary.Confirmed, summary.Skipped)
}

// DisplayReports prints the per-destination delivery outcomes.
func (s *SimpleUI) DisplayReports(reports []m.Report) {
	for _, report := range reports {
		if report.Err != nil {
			s.printf("%s: failed: %v\n", report.Destination, report.Err)
			continue
		}

		s.printf("%s: %s\n", report.Destination, report.Detail)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
