package client_test

import (
	"context"
	"encoding/binary"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/hound/internal/client"
	"github.com/jroosing/hound/internal/dnswire"
)

// scriptedTransport builds its response from the query it receives, so
// tests can echo the randomly chosen transaction ID.
type scriptedTransport struct {
	build func(query []byte) ([]byte, error)
}

func (s *scriptedTransport) Exchange(_ context.Context, query []byte) ([]byte, error) {
	return s.build(query)
}

// answerA builds a minimal response to an A query: the question section is
// echoed verbatim and a single A record answers it via a compression
// pointer to the question name.
func answerA(query []byte, ip [4]byte) []byte {
	resp := make([]byte, 0, len(query)+16)
	resp = append(resp, query[:2]...)       // transaction ID
	resp = append(resp, 0x81, 0x80)         // QR, RD, RA
	resp = append(resp, 0x00, 0x01)         // QDCOUNT
	resp = append(resp, 0x00, 0x01)         // ANCOUNT
	resp = append(resp, 0x00, 0x00)         // NSCOUNT
	resp = append(resp, 0x00, 0x00)         // ARCOUNT
	resp = append(resp, query[12:]...)      // question
	resp = append(resp, 0xC0, 0x0C)         // name: pointer to question
	resp = append(resp, 0x00, 0x01)         // type A
	resp = append(resp, 0x00, 0x01)         // class IN
	resp = append(resp, 0x00, 0x00, 0x01, 0x2C) // TTL 300
	resp = append(resp, 0x00, 0x04)         // RDLENGTH
	resp = append(resp, ip[:]...)
	return resp
}

func TestLookupDecodesAnswer(t *testing.T) {
	fake := &scriptedTransport{
		build: func(query []byte) ([]byte, error) {
			return answerA(query, [4]byte{93, 184, 216, 34}), nil
		},
	}
	c := client.NewWithTransport(fake)

	resp, err := c.Lookup(context.Background(), client.Request{
		Name: "example.com",
		Type: dnswire.TypeA,
	})
	require.NoError(t, err)

	require.Len(t, resp.Message.Answers, 1)
	rr := resp.Message.Answers[0]
	assert.Equal(t, "example.com", rr.Name)
	assert.Equal(t, uint32(300), rr.TTL)
	assert.Equal(t, "93.184.216.34", rr.Data.Value())
	assert.Equal(t, dnswire.RCodeNoError, resp.Message.Header.RCode())
}

func TestLookupRejectsMismatchedID(t *testing.T) {
	fake := &scriptedTransport{
		build: func(query []byte) ([]byte, error) {
			resp := answerA(query, [4]byte{127, 0, 0, 1})
			// Corrupt the transaction ID.
			id := binary.BigEndian.Uint16(resp[:2])
			binary.BigEndian.PutUint16(resp[:2], id^0xFFFF)
			return resp, nil
		},
	}
	c := client.NewWithTransport(fake)

	_, err := c.Lookup(context.Background(), client.Request{
		Name: "example.com",
		Type: dnswire.TypeA,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestLookupRejectsNonResponse(t *testing.T) {
	fake := &scriptedTransport{
		build: func(query []byte) ([]byte, error) {
			resp := answerA(query, [4]byte{127, 0, 0, 1})
			resp[2] &^= 0x80 // clear QR
			return resp, nil
		},
	}
	c := client.NewWithTransport(fake)

	_, err := c.Lookup(context.Background(), client.Request{
		Name: "example.com",
		Type: dnswire.TypeA,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not marked as a response")
}

func TestLookupSetsRecursionDesired(t *testing.T) {
	var captured []byte
	fake := &scriptedTransport{
		build: func(query []byte) ([]byte, error) {
			captured = append([]byte(nil), query...)
			return answerA(query, [4]byte{127, 0, 0, 1}), nil
		},
	}
	c := client.NewWithTransport(fake)

	_, err := c.Lookup(context.Background(), client.Request{
		Name: "example.com",
		Type: dnswire.TypeA,
	})
	require.NoError(t, err)

	flags := binary.BigEndian.Uint16(captured[2:4])
	assert.NotZero(t, flags&dnswire.RDFlag)
	assert.Zero(t, flags&dnswire.QRFlag)
}

func TestLookupAddsEDNSRecord(t *testing.T) {
	var captured []byte
	fake := &scriptedTransport{
		build: func(query []byte) ([]byte, error) {
			captured = append([]byte(nil), query...)
			return answerA(query, [4]byte{127, 0, 0, 1}), nil
		},
	}
	c := client.NewWithTransport(fake)

	_, err := c.Lookup(context.Background(), client.Request{
		Name:           "example.com",
		Type:           dnswire.TypeA,
		UDPPayloadSize: 1232,
	})
	require.NoError(t, err)

	arcount := binary.BigEndian.Uint16(captured[10:12])
	assert.Equal(t, uint16(1), arcount)
}

func TestPrepareName(t *testing.T) {
	ascii, err := client.PrepareName("example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", ascii)

	// Underscore labels must survive untouched.
	ascii, err = client.PrepareName("_dmarc.example.com")
	require.NoError(t, err)
	assert.Equal(t, "_dmarc.example.com", ascii)

	ascii, err = client.PrepareName("bücher.example")
	require.NoError(t, err)
	assert.Equal(t, "xn--bcher-kva.example", ascii)
}

func TestReverseName(t *testing.T) {
	assert.Equal(t, "4.3.2.1.in-addr.arpa",
		client.ReverseName(net.ParseIP("1.2.3.4")))

	assert.Equal(t,
		"b.a.9.8.7.6.5.0.4.0.0.0.3.0.0.0.2.0.0.0.1.0.0.0.0.0.0.0.1.2.3.4.ip6.arpa",
		client.ReverseName(net.ParseIP("4321:0:1:2:3:4:567:89ab")))
}

func TestResolveTypes(t *testing.T) {
	types, err := client.ResolveTypes([]string{"A", "mx"})
	require.NoError(t, err)
	assert.Equal(t, []dnswire.RecordType{dnswire.TypeA, dnswire.TypeMX}, types)

	types, err = client.ResolveTypes([]string{"ANY"})
	require.NoError(t, err)
	assert.Contains(t, types, dnswire.TypeA)
	assert.Contains(t, types, dnswire.TypeAAAA)
	assert.Contains(t, types, dnswire.TypeSOA)
	assert.Len(t, types, 8)

	_, err = client.ResolveTypes([]string{"NOPE"})
	assert.Error(t, err)
}
