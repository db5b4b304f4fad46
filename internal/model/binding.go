package model

// VariableBinding represents a proposed or confirmed mapping from one
// literal value to one variable name. Bindings are proposed by the namer,
// edited during user review, and consumed once by the rewrite engine.
type VariableBinding struct {
	CanonicalValue string
	VariableName   string
	Occurrences    []InputRecord // ordered, first-seen order
	UserConfirmed  bool
}

// ReviewSummary aggregates a reviewed binding sequence for display: how many
// input values were recorded, how many distinct variables were proposed, and
// how the review split them.
type ReviewSummary struct {
	TotalInputs int
	Variables   int
	Confirmed   int
	Skipped     int
}

// Substitution records one applied replacement. Locations refer to the
// original script text, before the variables block was inserted.
type Substitution struct {
	VariableName string
	Location     Span
}

// RewriteResult holds the rewritten script text plus a manifest of which
// locations were substituted.
type RewriteResult struct {
	FinalText     string
	Substitutions []Substitution
}
