// Package domain contains the core post-processing pipeline for recorded
// test scripts: literal scanning, variable naming, script rewriting and
// metadata injection.
package domain

import (
	"regexp"
	"strings"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// Scanner extracts literal input values from a recorded script.
//
// Only input actions (fill, type, press_sequentially, select_option) are
// recognized; clicks, navigation and waits are ignored. Arguments that are
// already get_var(...) references are never reported, so re-running the
// scanner over an already-processed file yields no records for untouched
// lines.
type Scanner interface {
	Scan(script string) ([]m.InputRecord, error)
}

type scanner struct{}

// NewScanner constructs a Scanner for the Playwright Python sync dialect.
func NewScanner() Scanner {
	return &scanner{}
}

// quoted matches a double-quoted Python string literal, escapes included.
const quoted = `"(?:[^"\\]|\\.)*"`

var (
	// page.fill("selector", "value") and friends.
	directInputPattern = regexp.MustCompile(
		`\.(fill|type|select_option)\(\s*(` + quoted + `)\s*,\s*(` + quoted + `)\s*\)`)

	// page.get_by_label("Name").fill("value") and friends.
	chainedInputPattern = regexp.MustCompile(
		`\.(?:get_by_\w+|locator)\(([^)]*)\)\.(fill|type|press_sequentially|select_option)\(\s*(` + quoted + `)\s*\)`)
)

var actionKinds = map[string]m.ActionKind{
	"fill":               m.ActionFill,
	"type":               m.ActionType,
	"press_sequentially": m.ActionPressSequentially,
	"select_option":      m.ActionSelect,
}

func (s *scanner) Scan(script string) ([]m.InputRecord, error) {
	if strings.TrimSpace(script) == "" {
		return nil, &ScanStructureError{Reason: "recording is empty"}
	}

	lines := strings.Split(script, "\n")

	var records []m.InputRecord

	sawAction := false

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}

		if strings.Contains(stripped, "page.") {
			sawAction = true
		}

		records = append(records, scanLine(line, i+1)...)
	}

	if !sawAction {
		return nil, &ScanStructureError{Reason: "no page actions found"}
	}

	return records, nil
}

// scanLine collects input records from a single line. lineNum is 1-based.
func scanLine(line string, lineNum int) []m.InputRecord {
	var records []m.InputRecord

	seen := make(map[int]bool) // start column of literals already recorded

	for _, match := range directInputPattern.FindAllStringSubmatchIndex(line, -1) {
		action := line[match[2]:match[3]]
		selector := line[match[4]:match[5]]
		valueStart, valueEnd := match[6], match[7]

		if seen[valueStart] {
			continue
		}

		seen[valueStart] = true

		records = append(records, m.InputRecord{
			Value:           unquote(line[valueStart:valueEnd]),
			FieldIdentifier: unquote(selector),
			Action:          actionKinds[action],
			Location: m.Span{
				Line:     lineNum,
				StartCol: valueStart,
				EndCol:   valueEnd,
			},
		})
	}

	for _, match := range chainedInputPattern.FindAllStringSubmatchIndex(line, -1) {
		locatorArgs := line[match[2]:match[3]]
		action := line[match[4]:match[5]]
		valueStart, valueEnd := match[6], match[7]

		if seen[valueStart] {
			continue
		}

		seen[valueStart] = true

		records = append(records, m.InputRecord{
			Value:           unquote(line[valueStart:valueEnd]),
			FieldIdentifier: locatorArgs,
			Action:          actionKinds[action],
			Location: m.Span{
				Line:     lineNum,
				StartCol: valueStart,
				EndCol:   valueEnd,
			},
		})
	}

	return records
}

// unquote strips the surrounding double quotes, preserving the raw source
// text (escape sequences included) so later span matching stays exact.
func unquote(literal string) string {
	if len(literal) >= 2 && literal[0] == '"' && literal[len(literal)-1] == '"' {
		return literal[1 : len(literal)-1]
	}

	return literal
}
