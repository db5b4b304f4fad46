// Package model defines the data structures for recorded-script processing.
package model

// ActionKind represents the category of recorded input action.
type ActionKind string

const (
	// ActionFill represents fill actions (page.fill / locator.fill).
	ActionFill ActionKind = "fill"
	// ActionType represents type actions (page.type / locator.type).
	ActionType ActionKind = "type"
	// ActionPressSequentially represents locator.press_sequentially actions.
	ActionPressSequentially ActionKind = "press_sequentially"
	// ActionSelect represents locator.select_option actions.
	ActionSelect ActionKind = "select_option"
)

// Span pinpoints a quoted literal inside the script text. Columns are
// zero-based byte offsets within the line and cover the literal including
// its surrounding quotes.
type Span struct {
	Line     int // 1-based
	StartCol int
	EndCol   int
}

// InputRecord represents one literal value bound to one recorded input
// action. Records are created by the scanner and are never mutated; they
// live only for the duration of a single pipeline run.
type InputRecord struct {
	Value           string
	FieldIdentifier string // selector or accessible name the action targets
	Action          ActionKind
	Location        Span
}
