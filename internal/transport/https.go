package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"time"
)

// contentTypeDNSMessage is the media type for DNS-over-HTTPS bodies
// (RFC 8484 Section 6).
const contentTypeDNSMessage = "application/dns-message"

// maxHTTPResponseSize caps how much of an HTTP body is read as a DNS
// message. DNS messages cannot exceed 64 KiB.
const maxHTTPResponseSize = 65535

// HTTPS implements DNS-over-HTTPS (RFC 8484): the serialized query is
// POSTed as the request body and the response body is the raw DNS message.
// HTTP supplies the framing, so no length prefix is involved.
type HTTPS struct {
	// URL is the resolver endpoint, e.g. "https://dns.example/dns-query".
	URL     string
	Timeout time.Duration

	// RootCAs overrides the system trust roots. Nil means system roots.
	RootCAs *x509.CertPool

	client *http.Client
}

func (t *HTTPS) httpClient() *http.Client {
	if t.client == nil {
		timeout := t.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		t.client = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{RootCAs: t.RootCAs},
			},
		}
	}
	return t.client
}

func (t *HTTPS) Exchange(ctx context.Context, query []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.URL, bytes.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentTypeDNSMessage)
	req.Header.Set("Accept", contentTypeDNSMessage)

	resp, err := t.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Do not decode the body of an error response as a DNS message.
		return nil, &HTTPStatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTTPResponseSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxHTTPResponseSize {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxHTTPResponseSize)
	}
	return body, nil
}
