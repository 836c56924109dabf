package instagram

import "fmt"

// ErrorKind classifies resolver failures.
type ErrorKind string

const (
	ErrorKindNetwork     ErrorKind = "network"
	ErrorKindRateLimit   ErrorKind = "rate_limit"
	ErrorKindAuth        ErrorKind = "auth"
	ErrorKindParsing     ErrorKind = "parsing"
	ErrorKindNotFound    ErrorKind = "not_found"
	ErrorKindServerError ErrorKind = "server_error"
	ErrorKindBadInput    ErrorKind = "bad_input"
	ErrorKindUnknown     ErrorKind = "unknown"
)

// Error is a typed Instagram resolver error. Code carries the HTTP status
// when one was received.
type Error struct {
	Kind    ErrorKind
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("instagram %s error (code %d): %s", e.Kind, e.Code, e.Message)
}

// Retryable reports whether a request failing with this error is worth
// repeating.
func (e *Error) Retryable() bool {
	return e.Kind == ErrorKindNetwork || e.Kind == ErrorKindServerError || e.Kind == ErrorKindRateLimit
}
