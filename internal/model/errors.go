package model

import "fmt"

// OracleError wraps any failure of the content oracle: network errors,
// timeouts, rate limits, malformed or out-of-range responses. Downstream
// stages treat all of them as one failure case and recover via fallback.
type OracleError struct {
	Op  string // "classify" or "bias"
	Err error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// ValidationError marks a malformed Comment rejected before entering the
// pipeline. Unlike OracleError it is surfaced to the caller.
type ValidationError struct {
	CommentID string
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.CommentID == "" {
		return fmt.Sprintf("invalid comment: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid comment %s: %s %s", e.CommentID, e.Field, e.Reason)
}

// ConfigurationError marks an invalid configuration value. It fails fast at
// startup, before any comment is processed.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)
}
