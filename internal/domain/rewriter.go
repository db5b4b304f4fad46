package domain

import (
	"regexp"
	"sort"
	"strings"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// Rewriter regenerates the script text with confirmed literals replaced by
// variable references and a variables declaration block inserted. All
// non-literal code is preserved byte-for-byte outside the substituted spans.
type Rewriter interface {
	Rewrite(script string, bindings []m.VariableBinding) (m.RewriteResult, error)
}

type rewriter struct{}

// NewRewriter constructs a Rewriter for the Playwright Python sync dialect.
func NewRewriter() Rewriter {
	return &rewriter{}
}

// occurrence is one pending substitution, verified before anything is applied.
type occurrence struct {
	variableName string
	location     m.Span
	expected     string // quoted literal as recorded by the scanner
}

var variablesDictPattern = regexp.MustCompile(`(?s)TEST_VARIABLES\s*=\s*\{[^}]*\}`)

var importLinePattern = regexp.MustCompile(`^(?:import\s+\S+|from\s+\S+\s+import\s+)`)

func (r *rewriter) Rewrite(script string, bindings []m.VariableBinding) (m.RewriteResult, error) {
	confirmed := confirmedBindings(bindings)

	if err := checkNames(confirmed); err != nil {
		return m.RewriteResult{}, err
	}

	occurrences := collectOccurrences(confirmed)
	lines := strings.Split(script, "\n")

	// Verify every span before applying anything, so a stale location never
	// produces a partially rewritten file.
	for _, occ := range occurrences {
		if err := verifySpan(lines, occ); err != nil {
			return m.RewriteResult{}, err
		}
	}

	// Apply right-to-left within each line so earlier substitutions never
	// invalidate the column offsets of later ones.
	sort.Slice(occurrences, func(i, j int) bool {
		if occurrences[i].location.Line != occurrences[j].location.Line {
			return occurrences[i].location.Line > occurrences[j].location.Line
		}

		return occurrences[i].location.StartCol > occurrences[j].location.StartCol
	})

	for _, occ := range occurrences {
		line := lines[occ.location.Line-1]
		lines[occ.location.Line-1] = line[:occ.location.StartCol] +
			`get_var("` + occ.variableName + `")` +
			line[occ.location.EndCol:]
	}

	finalText := insertVariablesBlock(strings.Join(lines, "\n"), confirmed)

	manifest := make([]m.Substitution, 0, len(occurrences))
	for _, occ := range occurrences {
		manifest = append(manifest, m.Substitution{
			VariableName: occ.variableName,
			Location:     occ.location,
		})
	}

	sort.Slice(manifest, func(i, j int) bool {
		if manifest[i].Location.Line != manifest[j].Location.Line {
			return manifest[i].Location.Line < manifest[j].Location.Line
		}

		return manifest[i].Location.StartCol < manifest[j].Location.StartCol
	})

	return m.RewriteResult{FinalText: finalText, Substitutions: manifest}, nil
}

func confirmedBindings(bindings []m.VariableBinding) []m.VariableBinding {
	var confirmed []m.VariableBinding

	for _, binding := range bindings {
		if binding.UserConfirmed {
			confirmed = append(confirmed, binding)
		}
	}

	return confirmed
}

func checkNames(confirmed []m.VariableBinding) error {
	seen := make(map[string]bool)

	for _, binding := range confirmed {
		if err := ValidateIdentifier(binding.VariableName); err != nil {
			return err
		}

		if seen[binding.VariableName] {
			return &NameCollisionError{VariableName: binding.VariableName}
		}

		seen[binding.VariableName] = true
	}

	return nil
}

func collectOccurrences(confirmed []m.VariableBinding) []occurrence {
	var occurrences []occurrence

	for _, binding := range confirmed {
		for _, record := range binding.Occurrences {
			occurrences = append(occurrences, occurrence{
				variableName: binding.VariableName,
				location:     record.Location,
				expected:     `"` + record.Value + `"`,
			})
		}
	}

	return occurrences
}

func verifySpan(lines []string, occ occurrence) error {
	lineIdx := occ.location.Line - 1
	if lineIdx < 0 || lineIdx >= len(lines) {
		return &LocationConflictError{
			VariableName: occ.variableName,
			Location:     occ.location,
			Expected:     occ.expected,
		}
	}

	line := lines[lineIdx]
	if occ.location.StartCol < 0 || occ.location.EndCol > len(line) ||
		line[occ.location.StartCol:occ.location.EndCol] != occ.expected {
		found := ""
		if occ.location.StartCol >= 0 && occ.location.EndCol <= len(line) {
			found = line[occ.location.StartCol:occ.location.EndCol]
		}

		return &LocationConflictError{
			VariableName: occ.variableName,
			Location:     occ.location,
			Expected:     occ.expected,
			Found:        found,
		}
	}

	return nil
}

// insertVariablesBlock synthesizes the TEST_VARIABLES declaration once per
// output file. When the recorder wrapper already emitted a block, its entries
// are regenerated in place; otherwise a new block is inserted after the
// imports, never interleaved with action calls.
func insertVariablesBlock(script string, confirmed []m.VariableBinding) string {
	if loc := variablesDictPattern.FindStringIndex(script); loc != nil {
		if len(confirmed) == 0 {
			// Nothing to declare and the block already exists: leave the
			// script untouched.
			return script
		}

		// Spliced by index: values may contain characters a regexp
		// replacement string would misinterpret.
		return script[:loc[0]] + variablesDict(confirmed) + script[loc[1]:]
	}

	block := "\n" + variablesDict(confirmed) + "\n\n" + accessorFunc() + "\n"

	lines := strings.Split(script, "\n")
	insertAt := 0

	for i, line := range lines {
		if importLinePattern.MatchString(line) {
			insertAt = i + 1
		}
	}

	head := strings.Join(lines[:insertAt], "\n")
	tail := strings.Join(lines[insertAt:], "\n")

	if insertAt == 0 {
		return block + "\n" + tail
	}

	return head + "\n" + block + "\n" + tail
}

// variablesDict renders the declaration in binding order. Canonical values
// hold the raw source text between the original quotes, so they are emitted
// verbatim without re-escaping.
func variablesDict(confirmed []m.VariableBinding) string {
	var b strings.Builder

	b.WriteString("TEST_VARIABLES = {\n")

	for _, binding := range confirmed {
		b.WriteString(`    "` + binding.VariableName + `": "` + binding.CanonicalValue + "\",\n")
	}

	b.WriteString("}")

	return b.String()
}

func accessorFunc() string {
	return "def get_var(name: str, default: str = \"\") -> str:\n" +
		"    return TEST_VARIABLES.get(name, default)"
}
