package ofxconnect

import (
	"errors"
	"fmt"
)

// ErrNoStatement is returned, wrapped in a DecodeError, when a statement response
// decodes but carries no statement for the requested account.
var ErrNoStatement = errors.New("error - response carries no statement")

// ErrNoAccountInfo is returned, wrapped in a DecodeError, when an account list
// response decodes but carries no account information message set.
var ErrNoAccountInfo = errors.New("error - response carries no account information")

// ConfigError reports a missing or invalid Identity or query field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("error - invalid configuration %s: %s", e.Field, e.Reason)
}

// TransportError reports a failed HTTP round trip: connection failure, timeout or
// a non-2xx status. StatusCode is 0 when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("error - %s returned HTTP status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("error - request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that is not well formed OFX or lacks the
// elements the operation expects.
type DecodeError struct {
	Operation string
	Err       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("error - decoding %s response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EntropyError reports that the random source failed while generating a token.
type EntropyError struct {
	Err error
}

func (e *EntropyError) Error() string {
	return fmt.Sprintf("error - random source unavailable: %v", e.Err)
}

func (e *EntropyError) Unwrap() error {
	return e.Err
}

// StatusError reports a well formed response whose sign-on or transaction STATUS
// carries a non-zero code, 15500 for bad credentials for example.
type StatusError struct {
	Operation string
	Code      int
	Severity  string
	Message   string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("error - %s rejected with OFX status %d (%s)", e.Operation, e.Code, e.Severity)
	}
	return fmt.Sprintf("error - %s rejected with OFX status %d (%s): %s", e.Operation, e.Code, e.Severity, e.Message)
}
