package inpost

import "fmt"

// ApiClientError is the single error kind crossing the client boundary.
// Transport failures, bad statuses, malformed bodies and decode failures
// are all normalized into it before callers see them.
type ApiClientError struct {
	Message string
	Cause   error
}

func (e *ApiClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ApiClientError) Unwrap() error { return e.Cause }

// DecodeError reports a response body that does not match the expected
// entity shape. It never leaves the client layer unwrapped.
type DecodeError struct {
	Entity string
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: field %q: %s", e.Entity, e.Field, e.Reason)
}
