// Package apierr defines the error kinds shared by the outbound HTTP
// clients. Both kinds are terminal for the call that produced them.
package apierr

import "fmt"

// TransportError covers network failures and non-2xx responses from an
// external service. No retry is attempted.
type TransportError struct {
	Service string
	Status  int
	Body    string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: transport error: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError covers response bodies that fail to parse into the
// expected shape.
type DecodeError struct {
	Service string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode error: %v", e.Service, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
