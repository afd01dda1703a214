package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"time"
)

// TLS implements DNS-over-TLS (RFC 7858): a TLS session over TCP, then the
// same 2-byte length-prefix framing as the plain TCP transport.
type TLS struct {
	Addr    string // nameserver as host:port
	Timeout time.Duration

	// ServerName overrides the host name used for certificate
	// verification. When empty, the host part of Addr is used.
	ServerName string

	// RootCAs overrides the system trust roots. Nil means system roots.
	RootCAs *x509.CertPool
}

func (t *TLS) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	d := net.Dialer{}
	rawConn, err := d.DialContext(ctx, "tcp", t.Addr)
	if err != nil {
		return nil, err
	}
	defer rawConn.Close()

	_ = rawConn.SetDeadline(deadline(ctx, t.Timeout))

	serverName := t.ServerName
	if serverName == "" {
		host, _, err := net.SplitHostPort(t.Addr)
		if err != nil {
			return nil, &TLSError{Err: err}
		}
		serverName = host
	}

	conn := tls.Client(rawConn, &tls.Config{
		ServerName: serverName,
		RootCAs:    t.RootCAs,
	})
	if err := conn.HandshakeContext(ctx); err != nil {
		return nil, &TLSError{Err: err}
	}

	return exchangeStream(conn, query)
}
