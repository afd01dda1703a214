package transport

import (
	"context"

	"github.com/jroosing/hound/internal/dnswire"
)

// TruncationRetry decorates a datagram transport with the mandatory UDP→TCP
// fallback: when the UDP reply has the TC flag set, the identical query is
// reissued over the stream transport and that result is used (RFC 1035
// Section 4.2.1).
//
// No other condition triggers a retry; network errors from either leg are
// returned as-is.
type TruncationRetry struct {
	Datagram Transport // usually *UDP
	Stream   Transport // usually *TCP against the same server
}

func (t *TruncationRetry) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	resp, err := t.Datagram.Exchange(ctx, query)
	if err != nil {
		return nil, err
	}
	if dnswire.IsTruncated(resp) {
		return t.Stream.Exchange(ctx, query)
	}
	return resp, nil
}
