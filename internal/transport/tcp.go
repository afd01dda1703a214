package transport

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/jroosing/hound/internal/helpers"
	"github.com/jroosing/hound/internal/pool"
)

// lenBufPool reduces allocations for the 2-byte DNS-over-TCP length field.
var lenBufPool = pool.New(func() *[]byte {
	buf := make([]byte, 2)
	return &buf
})

// TCP sends the query over a fresh TCP connection with length-prefix
// framing (RFC 1035 Section 4.2.2):
//
//	+--+--+
//	|Length| 2 bytes, big-endian message length
//	+--+--+
//	|      |
//	| DNS  | Variable length DNS message
//	|      |
//	+------+
type TCP struct {
	Addr    string // nameserver as host:port
	Timeout time.Duration
}

func (t *TCP) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", t.Addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	_ = conn.SetDeadline(deadline(ctx, t.Timeout))
	return exchangeStream(conn, query)
}

// exchangeStream writes one length-prefixed message and reads one
// length-prefixed reply. It is shared by the TCP and TLS transports, whose
// framing is identical once the connection exists.
func exchangeStream(conn io.ReadWriter, query []byte) ([]byte, error) {
	prefix := lenBufPool.Get()
	defer lenBufPool.Put(prefix)

	// Two writes avoid allocating prefix+query as one buffer.
	binary.BigEndian.PutUint16(*prefix, helpers.ClampIntToUint16(len(query)))
	if _, err := conn.Write(*prefix); err != nil {
		return nil, err
	}
	if _, err := conn.Write(query); err != nil {
		return nil, err
	}

	if _, err := io.ReadFull(conn, *prefix); err != nil {
		return nil, streamReadError(err)
	}
	respLen := int(binary.BigEndian.Uint16(*prefix))
	if respLen == 0 {
		return nil, fmt.Errorf("response length prefix is zero")
	}

	// io.ReadFull loops over partial reads until respLen bytes arrived or
	// the stream ended early.
	resp := make([]byte, respLen)
	if _, err := io.ReadFull(conn, resp); err != nil {
		return nil, streamReadError(err)
	}
	return resp, nil
}

// streamReadError maps a premature end of stream to ErrTruncatedResponse;
// everything else stays an ordinary network error.
func streamReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncatedResponse
	}
	return err
}
