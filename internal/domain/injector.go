package domain

import (
	"fmt"
	"regexp"
	"strings"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// Injector merges test metadata into the generated file header. It is a pure
// text merge with no knowledge of variable bindings, composable before or
// after rewriting.
type Injector interface {
	Inject(script string, meta m.TestMetadata) string
}

type injector struct{}

// NewInjector constructs an Injector.
func NewInjector() Injector {
	return &injector{}
}

var (
	headerDocstringPattern = regexp.MustCompile(`(?s)\A""".*?"""\n?`)
	retryCountPattern      = regexp.MustCompile(`(?m)^RETRY_COUNT\s*=.*$`)
	testTimeoutPattern     = regexp.MustCompile(`(?m)^TEST_TIMEOUT\s*=.*$`)
	screenshotPattern      = regexp.MustCompile(`(?m)^SCREENSHOT_ON_FAILURE\s*=.*$`)
)

func (in *injector) Inject(script string, meta m.TestMetadata) string {
	script = injectHeader(script, meta)

	// Applied last-to-first: missing settings are inserted right after the
	// header, so this keeps them in RETRY/TIMEOUT/SCREENSHOT reading order.
	script = upsertSetting(script, screenshotPattern,
		fmt.Sprintf("SCREENSHOT_ON_FAILURE = %s", pythonBool(meta.ScreenshotOnFailure)))
	script = upsertSetting(script, testTimeoutPattern,
		fmt.Sprintf("TEST_TIMEOUT = %d  # milliseconds", meta.TestTimeoutMS))
	script = upsertSetting(script, retryCountPattern,
		fmt.Sprintf("RETRY_COUNT = %d", meta.RetryCount))

	return script
}

// injectHeader replaces an existing leading docstring or prepends a new one.
func injectHeader(script string, meta m.TestMetadata) string {
	header := headerDocstring(meta)

	if loc := headerDocstringPattern.FindStringIndex(script); loc != nil {
		return header + script[loc[1]:]
	}

	return header + script
}

func headerDocstring(meta m.TestMetadata) string {
	var b strings.Builder

	b.WriteString("\"\"\"\n")
	b.WriteString("D365 F&O Automated Test\n")
	b.WriteString("=======================\n")
	b.WriteString("Test Name: " + meta.Name + "\n")
	b.WriteString("Description: " + meta.Description + "\n")
	b.WriteString("Recorded: " + meta.RecordedAt.Format("2006-01-02 15:04:05") + "\n")

	if meta.TargetURL != "" {
		b.WriteString("Target URL: " + meta.TargetURL + "\n")
	}

	b.WriteString("\"\"\"\n")

	return b.String()
}

// upsertSetting rewrites an existing configuration line in place, or appends
// the line after the header block when the script does not carry it yet.
func upsertSetting(script string, pattern *regexp.Regexp, line string) string {
	if loc := pattern.FindStringIndex(script); loc != nil {
		return script[:loc[0]] + line + script[loc[1]:]
	}

	if loc := headerDocstringPattern.FindStringIndex(script); loc != nil {
		return script[:loc[1]] + line + "\n" + script[loc[1]:]
	}

	return line + "\n" + script
}

func pythonBool(v bool) string {
	if v {
		return "True"
	}

	return "False"
}
