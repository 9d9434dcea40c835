package llm

import "fmt"

// EmbedError represents a failed embedding request
type EmbedError struct {
	Model   string
	Message string
	Cause   error
}

func (e *EmbedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding with %s failed: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding with %s failed: %s", e.Model, e.Message)
}

func (e *EmbedError) Unwrap() error {
	return e.Cause
}
