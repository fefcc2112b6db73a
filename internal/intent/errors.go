package intent

import (
	"errors"
	"fmt"
)

// ErrEmptyInstruction is returned for blank instructions.
var ErrEmptyInstruction = errors.New("empty instruction")

// TransportError covers network failures and non-2xx replies. Status is zero
// when no HTTP response was received; Reason is "timeout" when the call ran
// past its deadline.
type TransportError struct {
	Status int
	Body   string
	Reason string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("completion endpoint returned status %d: %s", e.Status, truncate(e.Body, 200))
	}
	return fmt.Sprintf("completion call failed: %s", e.Reason)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran past its deadline.
func (e *TransportError) Timeout() bool { return e.Reason == "timeout" }

// EmptyResponseError is returned when the reply holds no completion text.
type EmptyResponseError struct {
	Body string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("completion reply has no text: %s", truncate(e.Body, 200))
}

// ParseError is returned when the cleaned reply is not valid JSON. Both the
// raw and the cleaned text are kept for diagnostics.
type ParseError struct {
	RawText     string
	CleanedText string
	Err         error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("reply is not valid JSON (%v): %q", e.Err, truncate(e.CleanedText, 200))
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError is returned for valid JSON that is not one of the two intent
// shapes.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "unexpected intent shape: " + e.Reason
}

func schemaErrorf(format string, args ...any) *SchemaError {
	return &SchemaError{Reason: fmt.Sprintf(format, args...)}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
