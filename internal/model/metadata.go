package model

import "time"

// TestMetadata holds the descriptive and configuration data merged into the
// generated file header. It has no relationship to bindings beyond ending up
// in the same output file.
type TestMetadata struct {
	Name                string
	Description         string
	RecordedAt          time.Time
	TargetURL           string
	RetryCount          int
	TestTimeoutMS       int
	ScreenshotOnFailure bool
}
