package controller

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// TUI implements UI using Bubble Tea for interactive binding review.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// ReviewBindings runs the interactive review and returns the finalized
// bindings. Aborting the review returns an error so the pipeline discards
// its state without writing anything.
func (t *TUI) ReviewBindings(bindings []m.VariableBinding) ([]m.VariableBinding, error) {
	if len(bindings) == 0 {
		_, _ = fmt.Fprintln(t.output, "No input values detected")
		return bindings, nil
	}

	program := tea.NewProgram(newReviewModel(bindings), tea.WithOutput(t.output))

	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("review failed: %w", err)
	}

	model, ok := final.(reviewModel)
	if !ok {
		return nil, fmt.Errorf("review failed: unexpected model type")
	}

	if model.aborted {
		return nil, fmt.Errorf("review cancelled")
	}

	return model.bindings, nil
}

// DisplayBindings prints a short non-interactive summary.
func (t *TUI) DisplayBindings(bindings []m.VariableBinding) error {
	total := 0
	for _, binding := range bindings {
		total += len(binding.Occurrences)
	}

	_, _ = fmt.Fprintf(t.output, "Proposed %d variables across %d input values\n", len(bindings), total)

	return nil
}

// DisplaySummary prints the review outcome totals.
func (t *TUI) DisplaySummary(summary m.ReviewSummary) {
	_, _ = fmt.Fprintf(t.output, "%d input values -> %d variables (%d confirmed, %d skipped)\n",
		summary.TotalInputs, summary.Variables, summary.Confirmed, summary.Skipped)
}

// DisplayReports prints the per-destination delivery outcomes.
func (t *TUI) DisplayReports(reports []m.Report) {
	for _, report := range reports {
		if report.Err != nil {
			_, _ = fmt.Fprintf(t.output, "%s: failed: %v\n", report.Destination, report.Err)
			continue
		}

		_, _ = fmt.Fprintf(t.output, "%s: %s\n", report.Destination, report.Detail)
	}
}
