package ingestion

import "fmt"

// ExtractError represents a failure to decode a document
type ExtractError struct {
	Format  string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
