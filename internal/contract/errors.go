// Package contract defines the shared request/response contract layer: a
// registry of operations (method, path template, input schema, per-status
// response schemas) consumed by both the HTTP client and the server router
// so the two sides validate against the same single declaration.
//
// The error types below form the taxonomy every consumer maps to. Handlers
// and UI code should branch with errors.Is / errors.As rather than matching
// message strings.
package contract

import (
	"errors"
	"fmt"
)

// ErrUnknownOperation is returned by Resolve when no operation was
// registered under the requested key. Keys are string constants; hitting
// this in a production path means a wiring bug, not user error.
var ErrUnknownOperation = errors.New("unknown operation")

// MissingPathParamError reports a :name placeholder in a path template
// that had no value supplied at build time.
type MissingPathParamError struct {
	Param string
}

func (e *MissingPathParamError) Error() string {
	return fmt.Sprintf("missing path parameter %q", e.Param)
}

// InvalidRequestError means a request body failed the operation's input
// schema before any network call or handler ran. Surfaced as HTTP 400.
type InvalidRequestError struct {
	Key string
	Err error
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request for %s: %v", e.Key, e.Err)
}

func (e *InvalidRequestError) Unwrap() error { return e.Err }

// ContractViolationError means a response carried an unregistered status
// code, or its body failed the schema registered for that status. It
// signals client/server drift (a bug, not user error) and carries the raw
// status and body for diagnostics.
type ContractViolationError struct {
	Key    string
	Status int
	Body   []byte
	Err    error
}

func (e *ContractViolationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("contract violation on %s (status %d): %v", e.Key, e.Status, e.Err)
	}
	return fmt.Sprintf("contract violation on %s: unregistered status %d", e.Key, e.Status)
}

func (e *ContractViolationError) Unwrap() error { return e.Err }

// TransportError means no usable response was produced at all (connection
// refused, DNS failure, context cancelled mid-flight).
type TransportError struct {
	Key string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure on %s: %v", e.Key, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
