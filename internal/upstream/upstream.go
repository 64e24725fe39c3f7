// Package upstream contains the clients for the two external data
// providers: the Open-Meteo weather API and the data.gov.in commodity
// price API. Both degrade the same way: a bounded timeout and an Error
// that never leaks provider details to the caller.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Error wraps any upstream failure. Timeout distinguishes an exceeded
// deadline (HTTP 504) from other provider trouble (HTTP 502).
type Error struct {
	Provider string
	Timeout  bool
	Err      error
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: timed out: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// wrap classifies err for a provider.
func wrap(provider string, err error) *Error {
	timeout := errors.Is(err, context.DeadlineExceeded)
	var ne net.Error
	if !timeout && errors.As(err, &ne) && ne.Timeout() {
		timeout = true
	}
	return &Error{Provider: provider, Timeout: timeout, Err: err}
}
