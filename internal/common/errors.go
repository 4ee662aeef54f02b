package common

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an upstream search yields no results.
var ErrNotFound = errors.New("no results found")

// TransportError reports a failed call to a remote data source: the request
// could not be sent, the status was not 2xx, or the payload was malformed.
type TransportError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DegradedDataError marks optional enrichment data that could not be
// obtained. It is informational and never aborts a request.
type DegradedDataError struct {
	Source string
	Err    error
}

func (e *DegradedDataError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *DegradedDataError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err wraps a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
