package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// Namer groups scanned records by exact value and proposes a stable variable
// name for each distinct value. It only proposes; nothing is rewritten until
// the user confirms the bindings.
type Namer interface {
	Propose(records []m.InputRecord) []m.VariableBinding
}

type namer struct{}

// NewNamer constructs a Namer.
func NewNamer() Namer {
	return &namer{}
}

// Selector fragments that carry a human-readable field name, in preference
// order. Mirrors the accessor attributes the recorder emits.
var fieldHintPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)name\s*=\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)label\s*=\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)placeholder\s*=\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)(?:id|test-id|data-testid)\s*[=:]\s*"([^"]+)"`),
}

func (n *namer) Propose(records []m.InputRecord) []m.VariableBinding {
	var bindings []m.VariableBinding

	byValue := make(map[string]int) // canonical value -> index into bindings
	taken := make(map[string]bool)

	for _, record := range records {
		if idx, ok := byValue[record.Value]; ok {
			bindings[idx].Occurrences = append(bindings[idx].Occurrences, record)
			continue
		}

		name := uniqueName(deriveBaseName(record), taken)
		taken[name] = true
		byValue[record.Value] = len(bindings)

		bindings = append(bindings, m.VariableBinding{
			CanonicalValue: record.Value,
			VariableName:   name,
			Occurrences:    []m.InputRecord{record},
		})
	}

	return bindings
}

// deriveBaseName extracts a human-readable name from the record's field
// identifier, falling back to the value itself.
func deriveBaseName(record m.InputRecord) string {
	for _, pattern := range fieldHintPatterns {
		if match := pattern.FindStringSubmatch(record.FieldIdentifier); match != nil {
			if name := toIdentifier(match[1]); name != "" {
				return name
			}
		}
	}

	if name := toIdentifier(record.FieldIdentifier); name != "" {
		return name
	}

	value := record.Value
	if len(value) > 20 {
		value = value[:20]
	}

	if name := toIdentifier(value); name != "" {
		return name
	}

	return "inputValue"
}

// toIdentifier normalizes free text to a lowerCamel identifier. Returns the
// empty string when nothing usable remains.
func toIdentifier(text string) string {
	// Identifiers stay ASCII so every proposed name passes
	// ValidateIdentifier unedited: localized labels drop their accented and
	// non-Latin runes before word splitting.
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}

		return r
	}, text)

	words := strings.FieldsFunc(ascii, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder

	for i, word := range words {
		runes := []rune(word)
		if i == 0 {
			// Acronym-style words lowercase entirely, CamelCase words only
			// drop their leading capital.
			if strings.ToUpper(word) == word {
				b.WriteString(strings.ToLower(word))
				continue
			}

			runes[0] = unicode.ToLower(runes[0])
		} else {
			runes[0] = unicode.ToUpper(runes[0])
		}

		b.WriteString(string(runes))
	}

	name := b.String()
	if unicode.IsDigit(rune(name[0])) {
		name = "value" + name
	}

	return name
}

// uniqueName disambiguates collisions deterministically by appending an
// incrementing numeric suffix in first-seen order.
func uniqueName(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}

	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Keywords of the target dialect that cannot be used as variable names.
var reservedWords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"class": true, "continue": true, "def": true, "del": true, "elif": true,
	"else": true, "except": true, "finally": true, "for": true, "from": true,
	"global": true, "if": true, "import": true, "in": true, "is": true,
	"lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
	"raise": true, "return": true, "try": true, "while": true, "with": true,
	"yield": true,
}

// ValidateIdentifier reports whether name is a legal variable name in the
// target dialect. Intended for edit-time validation so the user can correct
// a bad name immediately instead of failing at rewrite time.
func ValidateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) || reservedWords[name] {
		return &IdentifierInvalidError{Name: name}
	}

	return nil
}
