package domain

import "fmt"

// ValidationError reports user input rejected before any store write.
// Malformed due dates and unknown status literals surface as values of
// this type so the handler can answer with a controlled error instead of
// crashing the request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
