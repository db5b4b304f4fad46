// Package controller provides the review and display surfaces for the
// pipeline: a Bubble Tea TUI for interactive binding review and a plain-text
// fallback for non-interactive runs.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// UI is the review boundary of the pipeline. It receives the proposed
// variable bindings for display and edit, and returns the finalized sequence
// with userConfirmed flags and possibly-edited names.
type UI interface {
	ReviewBindings(bindings []m.VariableBinding) ([]m.VariableBinding, error)
	DisplayBindings(bindings []m.VariableBinding) error
	DisplaySummary(summary m.ReviewSummary)
	DisplayReports(reports []m.Report)
}

// NewUI creates a UI based on whether TTY mode is enabled. When useTTY is
// true it returns the interactive TUI, otherwise the plain-text UI.
// autoConfirm makes the plain-text UI confirm every proposed binding
// unchanged.
func NewUI(cmd *cobra.Command, useTTY bool, autoConfirm bool) UI {
	if useTTY && !autoConfirm {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd, autoConfirm)
}

// IsTTY checks if the given writer is an interactive terminal.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
