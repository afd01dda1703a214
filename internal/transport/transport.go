// Package transport sends DNS query bytes to a nameserver and returns the
// raw response bytes, over a choice of UDP, TCP, DNS-over-TLS, or
// DNS-over-HTTPS.
//
// Each transport owns its framing: UDP exchanges bare datagrams, TCP and
// TLS prefix every message with a 2-byte big-endian length (RFC 1035
// Section 4.2.2), and HTTPS relies on HTTP's own framing. The
// TruncationRetry decorator implements the mandatory UDP→TCP fallback when
// a reply arrives with the TC flag set.
//
// Transports are not safe for concurrent use; issue concurrent queries
// through independent instances.
package transport

import (
	"context"
	"time"
)

// Transport sends one serialized DNS query and blocks for the raw response.
type Transport interface {
	Exchange(ctx context.Context, query []byte) ([]byte, error)
}

// Default ports for the supported transports.
const (
	PortDNS = "53"  // UDP and TCP
	PortDoT = "853" // DNS-over-TLS
)

// DefaultTimeout bounds a whole query/response round trip when the caller
// supplies no deadline of its own.
const DefaultTimeout = 5 * time.Second

// deadline returns the sooner of now+timeout and the context deadline, so
// a blocked read is always interrupted by whichever limit hits first.
func deadline(ctx context.Context, timeout time.Duration) time.Time {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(d) {
		d = ctxDeadline
	}
	return d
}
