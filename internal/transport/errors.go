package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedResponse means a stream closed before delivering the
	// number of bytes its length prefix declared. It is distinct from an
	// ordinary network error: the connection worked, but the server (or
	// something in between) cut the message short.
	ErrTruncatedResponse = errors.New("truncated response")
)

// TLSError wraps a TLS handshake or certificate verification failure, so
// callers can tell "could not even connect securely" apart from network
// and decode errors.
type TLSError struct {
	Err error
}

func (e *TLSError) Error() string { return "tls handshake: " + e.Err.Error() }
func (e *TLSError) Unwrap() error { return e.Err }

// HTTPStatusError reports a DNS-over-HTTPS exchange that came back with a
// status other than 200 OK. The body is not decoded as a DNS message.
type HTTPStatusError struct {
	Code   int
	Status string // status line text, e.g. "503 Service Unavailable"
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}
