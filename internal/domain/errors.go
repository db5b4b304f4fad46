package domain

import (
	"fmt"

	m "github.com/d365fo-tools/recweaver/internal/model"
)

// ScanStructureError indicates that the recorded text does not match the
// expected dialect shape at all. Non-retryable.
type ScanStructureError struct {
	Reason string
}

func (e *ScanStructureError) Error() string {
	return fmt.Sprintf("cannot process this recording: %s", e.Reason)
}

// LocationConflictError indicates that the script text changed between scan
// and rewrite such that a recorded literal span no longer matches. The
// rewrite aborts entirely; no partial file is produced.
type LocationConflictError struct {
	VariableName string
	Location     m.Span
	Expected     string
	Found        string
}

func (e *LocationConflictError) Error() string {
	return fmt.Sprintf("stale occurrence for %q at line %d col %d: expected %q, found %q",
		e.VariableName, e.Location.Line, e.Location.StartCol, e.Expected, e.Found)
}

// NameCollisionError indicates two confirmed bindings share a variable name.
type NameCollisionError struct {
	VariableName string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("variable name %q is used by more than one confirmed binding", e.VariableName)
}

// IdentifierInvalidError indicates a user-supplied variable name is not a
// legal identifier in the target dialect. Rejected at edit time.
type IdentifierInvalidError struct {
	Name string
}

func (e *IdentifierInvalidError) Error() string {
	return fmt.Sprintf("%q is not a valid variable name", e.Name)
}
