package llm

import "errors"

var (
	// ErrProviderUnavailable indicates the completion server is unreachable.
	ErrProviderUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRequestFailed indicates the provider answered with an error.
	ErrRequestFailed = errors.New("llm request failed")

	// ErrMissingAPIKey indicates a hosted provider was selected without a key.
	ErrMissingAPIKey = errors.New("llm api key not configured")
)

// ParseError carries the raw model text that failed to parse.
type ParseError struct {
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	return ErrInvalidOutput.Error() + ": " + e.Cause.Error()
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidOutput, e.Cause}
}
