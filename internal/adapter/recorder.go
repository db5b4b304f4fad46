// Package adapter contains the external collaborators of the pipeline: the
// browser recorder, the Azure DevOps and Key Vault clients, and the output
// file store.
package adapter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/d365fo-tools/recweaver/internal/config"
)

// Recorder launches the external browser recorder and returns the captured
// script text, boilerplate stripped.
type Recorder interface {
	Record(ctx context.Context, targetURL string) (string, error)
}

type codegenRecorder struct {
	settings config.RecordingSettings
	log      hclog.Logger

	// command is the recorder executable, overridable for tests.
	command string
}

// NewRecorder constructs a Recorder backed by `playwright codegen`.
func NewRecorder(settings config.RecordingSettings, log hclog.Logger) Recorder {
	return &codegenRecorder{
		settings: settings,
		log:      log,
		command:  "playwright",
	}
}

func (r *codegenRecorder) Record(ctx context.Context, targetURL string) (string, error) {
	outFile, err := os.CreateTemp("", "recweaver-capture-*.py")
	if err != nil {
		return "", fmt.Errorf("failed to create capture file: %w", err)
	}

	outPath := outFile.Name()
	_ = outFile.Close()

	defer func() { _ = os.Remove(outPath) }()

	args := []string{
		"codegen",
		"--target", "python",
		"-o", outPath,
		"--browser", r.settings.Browser,
		"--viewport-size", fmt.Sprintf("%d,%d", r.settings.ViewportWidth, r.settings.ViewportHeight),
	}
	if targetURL != "" {
		args = append(args, targetURL)
	}

	r.log.Debug("launching recorder", "command", r.command, "args", args)

	cmd := exec.CommandContext(ctx, r.command, args...)
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("recorder failed: %w", err)
	}

	raw, err := os.ReadFile(filepath.Clean(outPath))
	if err != nil {
		return "", fmt.Errorf("failed to read capture: %w", err)
	}

	return CleanupScript(string(raw)), nil
}

var runFuncPattern = regexp.MustCompile(`^def run\(playwright.*\).*:`)

var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^browser\s*=\s*playwright\.`),
	regexp.MustCompile(`^context\s*=\s*browser\.new_context`),
	regexp.MustCompile(`^page\s*=\s*context\.new_page\(\)`),
	regexp.MustCompile(`^context\.close\(\)`),
	regexp.MustCompile(`^browser\.close\(\)`),
	regexp.MustCompile(`^with sync_playwright\(\)`),
	regexp.MustCompile(`^run\(playwright\)`),
	regexp.MustCompile(`^from playwright`),
	regexp.MustCompile(`^import re$`),
}

// CleanupScript extracts the page actions from raw codegen output, dropping
// the browser/context boilerplate and re-indenting for the test wrapper.
func CleanupScript(raw string) string {
	var actions []string

	for _, line := range strings.Split(raw, "\n") {
		stripped := strings.TrimSpace(line)

		if runFuncPattern.MatchString(stripped) {
			continue
		}

		if isBoilerplate(stripped) {
			continue
		}

		if len(actions) == 0 && stripped == "" {
			continue
		}

		if strings.HasPrefix(stripped, "page.") || strings.HasPrefix(stripped, "expect(") {
			actions = append(actions, "    "+stripped)
		}
	}

	return strings.Join(actions, "\n")
}

func isBoilerplate(stripped string) bool {
	for _, pattern := range boilerplatePatterns {
		if pattern.MatchString(stripped) {
			return true
		}
	}

	return false
}

var testNamePattern = regexp.MustCompile(`[^a-z0-9_]+`)

// WrapTest wraps cleaned page actions in a pytest test function with the
// dialect's imports. The metadata header and variables block are added later
// in the pipeline.
func WrapTest(actions, testName string) string {
	funcName := strings.Trim(testNamePattern.ReplaceAllString(strings.ToLower(testName), "_"), "_")
	if funcName == "" {
		funcName = "recorded"
	}

	var b strings.Builder

	b.WriteString("import re\n")
	b.WriteString("import time\n")
	b.WriteString("from playwright.sync_api import Page, expect\n")
	b.WriteString("import pytest\n")
	b.WriteString("\n\n")
	b.WriteString("def test_" + funcName + "(page: Page):\n")
	b.WriteString("    # Recorded test actions\n")
	b.WriteString(actions)
	b.WriteString("\n")

	return b.String()
}
