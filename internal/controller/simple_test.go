package controller

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

func sampleBindings() []m.VariableBinding {
	return []m.VariableBinding{
		{
			CanonicalValue: "Contoso Ltd",
			VariableName:   "customerName",
			Occurrences: []m.InputRecord{
				{Value: "Contoso Ltd", Location: m.Span{Line: 6}},
				{Value: "Contoso Ltd", Location: m.Span{Line: 8}},
			},
		},
		{
			CanonicalValue: "1000",
			VariableName:   "amount",
			Occurrences: []m.InputRecord{
				{Value: "1000", Location: m.Span{Line: 9}},
			},
		},
	}
}

func TestSimpleUI_DisplayBindings_PrintsTable(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd, false)

	if err := ui.DisplayBindings(sampleBindings()); err != nil {
		t.Fatalf("DisplayBindings() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"customerName",
		"Contoso Ltd",
		"amount",
		"1000",
		"Total Variables 2",
		"3",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayBindings_Empty(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd, false)

	if err := ui.DisplayBindings(nil); err != nil {
		t.Fatalf("DisplayBindings() error = %v", err)
	}

	if !strings.Contains(buf.String(), "No input values detected") {
		t.Fatalf("output missing empty notice\noutput:\n%s", buf.String())
	}
}

func TestSimpleUI_ReviewBindings_AutoConfirm(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd, true)

	confirmed, err := ui.ReviewBindings(sampleBindings())
	if err != nil {
		t.Fatalf("ReviewBindings() error = %v", err)
	}

	if len(confirmed) != 2 {
		t.Fatalf("ReviewBindings() returned %d bindings, want 2", len(confirmed))
	}

	for _, binding := range confirmed {
		if !binding.UserConfirmed {
			t.Fatalf("binding %s not confirmed", binding.VariableName)
		}
	}
}

func TestSimpleUI_ReviewBindings_RequiresAutoConfirm(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd, false)

	if _, err := ui.ReviewBindings(sampleBindings()); err == nil {
		t.Fatalf("ReviewBindings() expected error without a terminal")
	}
}

func TestSimpleUI_DisplaySummary(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd, true)

	ui.DisplaySummary(m.ReviewSummary{
		TotalInputs: 3,
		Variables:   2,
		Confirmed:   1,
		Skipped:     1,
	})

	if !strings.Contains(buf.String(), "3 input values -> 2 variables (1 confirmed, 1 skipped)") {
		t.Fatalf("unexpected summary output: %q", buf.String())
	}
}

func TestSimpleUI_DisplayReports(t *testing.T) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	ui := NewSimpleUI(cmd, true)

	ui.DisplayReports([]m.Report{
		{Destination: m.DestinationLocal, Detail: "recorded-tests/test_a.py"},
		{Destination: m.DestinationDevOps, Err: errors.New("push rejected")},
	})

	output := buf.String()

	if !strings.Contains(output, "recorded-tests/test_a.py") {
		t.Fatalf("output missing local detail\noutput:\n%s", output)
	}

	if !strings.Contains(output, "push rejected") {
		t.Fatalf("output missing devops failure\noutput:\n%s", output)
	}
}
