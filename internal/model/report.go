package model

// Destination names an output boundary for a finished test script.
type Destination string

const (
	// DestinationLocal is the local filesystem writer.
	DestinationLocal Destination = "local"
	// DestinationDevOps is the Azure DevOps Git push collaborator.
	DestinationDevOps Destination = "devops"
)

// Report represents the outcome of delivering a finished script to one
// destination.
type Report struct {
	Destination Destination
	Detail      string // saved path or commit ID
	Err         error  // delivery error, nil on success
}
