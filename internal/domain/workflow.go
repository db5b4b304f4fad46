package domain

import (
	"fmt"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// ReviewFunc is the boundary to the user-review step. It receives the
// proposed bindings and returns them with userConfirmed flags set and
// possibly-edited names. Implementations live in the controller layer.
type ReviewFunc func(bindings []m.VariableBinding) ([]m.VariableBinding, error)

// Workflow drives a single recording-to-output pipeline run:
// scan -> propose -> review -> rewrite -> inject. Each run is a pure
// function of its inputs; no state is shared across runs.
type Workflow interface {
	Scan(script string) ([]m.InputRecord, error)
	Propose(records []m.InputRecord) []m.VariableBinding
	Rewrite(script string, bindings []m.VariableBinding) (m.RewriteResult, error)
	Inject(script string, meta m.TestMetadata) string
	Summary(bindings []m.VariableBinding) m.ReviewSummary
	Process(script string, meta m.TestMetadata, review ReviewFunc) (m.RewriteResult, error)
}

type workflow struct {
	scanner  Scanner
	namer    Namer
	rewriter Rewriter
	injector Injector
}

// NewWorkflow creates a Workflow wired with the provided components.
func NewWorkflow(scanner Scanner, namer Namer, rewriter Rewriter, injector Injector) Workflow {
	return &workflow{
		scanner:  scanner,
		namer:    namer,
		rewriter: rewriter,
		injector: injector,
	}
}

func (w *workflow) Scan(script string) ([]m.InputRecord, error) {
	return w.scanner.Scan(script)
}

func (w *workflow) Propose(records []m.InputRecord) []m.VariableBinding {
	return w.namer.Propose(records)
}

func (w *workflow) Rewrite(script string, bindings []m.VariableBinding) (m.RewriteResult, error) {
	return w.rewriter.Rewrite(script, bindings)
}

func (w *workflow) Inject(script string, meta m.TestMetadata) string {
	return w.injector.Inject(script, meta)
}

// Summary aggregates a reviewed binding sequence for display.
func (w *workflow) Summary(bindings []m.VariableBinding) m.ReviewSummary {
	summary := m.ReviewSummary{Variables: len(bindings)}

	for _, binding := range bindings {
		summary.TotalInputs += len(binding.Occurrences)

		if binding.UserConfirmed {
			summary.Confirmed++
		} else {
			summary.Skipped++
		}
	}

	return summary
}

// Process runs the full pipeline. An error from any step (including a review
// abort) discards the in-memory state before any output boundary is touched.
func (w *workflow) Process(script string, meta m.TestMetadata, review ReviewFunc) (m.RewriteResult, error) {
	records, err := w.scanner.Scan(script)
	if err != nil {
		return m.RewriteResult{}, err
	}

	bindings := w.namer.Propose(records)

	reviewed, err := review(bindings)
	if err != nil {
		return m.RewriteResult{}, fmt.Errorf("review aborted: %w", err)
	}

	result, err := w.rewriter.Rewrite(script, reviewed)
	if err != nil {
		return m.RewriteResult{}, err
	}

	result.FinalText = w.injector.Inject(result.FinalText, meta)

	return result, nil
}
