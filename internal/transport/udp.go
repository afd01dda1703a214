package transport

import (
	"context"
	"net"
	"time"
)

// maxUDPResponseSize is the receive buffer for a single reply datagram,
// sized for EDNS responses.
const maxUDPResponseSize = 4096

// UDP sends the query as a single datagram and blocks for one reply
// datagram. Replies with the TC flag set are returned as-is; wrap the
// transport in TruncationRetry to get the mandatory TCP fallback.
type UDP struct {
	Addr    string // nameserver as host:port
	Timeout time.Duration
}

func (t *UDP) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "udp", t.Addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	_ = conn.SetDeadline(deadline(ctx, t.Timeout))

	if _, err := conn.Write(query); err != nil {
		return nil, err
	}

	buf := make([]byte, maxUDPResponseSize)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n:n], nil
}
