// Package client turns a validated configuration into DNS exchanges: it
// builds query messages, sends them through a transport, decodes the
// response and checks that it answers the query that was sent.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/jroosing/hound/internal/config"
	"github.com/jroosing/hound/internal/dnswire"
	"github.com/jroosing/hound/internal/transport"
)

// Request is one (name, type) pair to look up.
type Request struct {
	Name string
	Type dnswire.RecordType

	// UDPPayloadSize > 0 adds an EDNS OPT record to the query.
	UDPPayloadSize uint16
}

// Response is the outcome of one lookup.
type Response struct {
	Message  *dnswire.Message
	Duration time.Duration
}

// Client sends queries to a single nameserver over one transport.
type Client struct {
	transport transport.Transport
	logger    *slog.Logger
}

// New builds a client for one nameserver according to the configuration.
func New(cfg *config.Config, nameserver string) *Client {
	return &Client{
		transport: buildTransport(cfg, nameserver),
		logger:    slog.Default(),
	}
}

// NewWithTransport builds a client over an existing transport.
func NewWithTransport(t transport.Transport) *Client {
	return &Client{transport: t, logger: slog.Default()}
}

// buildTransport maps the configured transport kind onto a concrete
// transport for the given nameserver. TransportAuto wraps UDP in the
// truncation-retry decorator so oversized answers fall back to TCP.
func buildTransport(cfg *config.Config, nameserver string) transport.Transport {
	addr := cfg.ServerAddr(nameserver)
	switch cfg.Transport {
	case config.TransportUDP:
		return &transport.UDP{Addr: addr, Timeout: cfg.Timeout}
	case config.TransportTCP:
		return &transport.TCP{Addr: addr, Timeout: cfg.Timeout}
	case config.TransportTLS:
		return &transport.TLS{Addr: addr, Timeout: cfg.Timeout, ServerName: cfg.TLSServerName}
	case config.TransportHTTPS:
		return &transport.HTTPS{URL: nameserver, Timeout: cfg.Timeout}
	default:
		return &transport.TruncationRetry{
			Datagram: &transport.UDP{Addr: addr, Timeout: cfg.Timeout},
			Stream:   &transport.TCP{Addr: addr, Timeout: cfg.Timeout},
		}
	}
}

// Lookup performs one query/response exchange. The response must carry the
// query's transaction ID and the QR flag; anything else is treated as a
// protocol error rather than returned to the caller.
func (c *Client) Lookup(ctx context.Context, req Request) (*Response, error) {
	name, err := PrepareName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid domain %q: %w", req.Name, err)
	}

	query := dnswire.Query{
		ID:             uint16(rand.Intn(65535)) + 1,
		Flags:          dnswire.RDFlag,
		Name:           name,
		Type:           req.Type,
		UDPPayloadSize: req.UDPPayloadSize,
	}
	raw, err := query.Marshal()
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sending query",
		"name", name, "type", req.Type.String(), "id", query.ID)

	start := time.Now()
	respBytes, err := c.transport.Exchange(ctx, raw)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	msg, err := dnswire.ParseMessage(respBytes)
	if err != nil {
		return nil, err
	}
	if msg.Header.ID != query.ID {
		return nil, fmt.Errorf("response ID %d does not match query ID %d",
			msg.Header.ID, query.ID)
	}
	if !msg.Header.IsResponse() {
		return nil, fmt.Errorf("response from server is not marked as a response")
	}

	c.logger.Debug("received response",
		"rcode", msg.Header.RCode().String(),
		"answers", len(msg.Answers),
		"elapsed", elapsed)

	return &Response{Message: msg, Duration: elapsed}, nil
}
