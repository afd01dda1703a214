package dnswire

import (
	"encoding/binary"
	"strconv"
)

// DNS header flags and masks (RFC 1035 Section 4.1.1)
//
// The DNS header contains a 16-bit flags field with the following layout:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	|QR|   Opcode  |AA|TC|RD|RA| Z|AD|CD|   RCODE   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	 15 14 13 12 11 10  9  8  7  6  5  4  3  2  1  0
const (
	QRFlag     uint16 = 0x8000 // Query/Response: 1 = response, 0 = query
	OpcodeMask uint16 = 0x7800 // Bits 14-11: operation type (use >> 11 to extract)
	AAFlag     uint16 = 0x0400 // Authoritative Answer
	TCFlag     uint16 = 0x0200 // Truncation: message was truncated
	RDFlag     uint16 = 0x0100 // Recursion Desired
	RAFlag     uint16 = 0x0080 // Recursion Available
	ZFlag      uint16 = 0x0040 // Reserved (must be zero in queries)
	ADFlag     uint16 = 0x0020 // Authenticated Data (DNSSEC)
	CDFlag     uint16 = 0x0010 // Checking Disabled (DNSSEC)
	RCodeMask  uint16 = 0x000F // Bits 3-0: response code
)

// RCode represents DNS response codes (RFC 1035).
type RCode uint16

const (
	RCodeNoError  RCode = 0 // No error
	RCodeFormErr  RCode = 1 // Format error: query malformed
	RCodeServFail RCode = 2 // Server failure: internal error
	RCodeNXDomain RCode = 3 // Non-existent domain
	RCodeNotImp   RCode = 4 // Not implemented: unsupported query type
	RCodeRefused  RCode = 5 // Query refused by policy
)

func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return "RCODE" + strconv.Itoa(int(r))
	}
}

// Header represents a DNS message header (RFC 1035 Section 4.1.1).
//
// The header is always 12 bytes: a transaction ID, a flags field, and four
// section counts. Response headers are decoded from the wire and not
// modified afterwards.
type Header struct {
	ID      uint16 // Transaction ID
	Flags   uint16 // See the flag constants above
	QDCount uint16 // Question count
	ANCount uint16 // Answer count
	NSCount uint16 // Authority (nameserver) count
	ARCount uint16 // Additional records count
}

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// Marshal serializes the header to wire format (big-endian, 12 bytes).
func (h Header) Marshal() []byte {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint16(b[0:2], h.ID)
	binary.BigEndian.PutUint16(b[2:4], h.Flags)
	binary.BigEndian.PutUint16(b[4:6], h.QDCount)
	binary.BigEndian.PutUint16(b[6:8], h.ANCount)
	binary.BigEndian.PutUint16(b[8:10], h.NSCount)
	binary.BigEndian.PutUint16(b[10:12], h.ARCount)
	return b
}

// ParseHeader reads a DNS header from the cursor.
func ParseHeader(c *Cursor) (Header, error) {
	var h Header
	var err error
	if h.ID, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.Flags, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.QDCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.ANCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.NSCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	if h.ARCount, err = c.ReadU16(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// RCode extracts the response code from the flags field.
func (h Header) RCode() RCode { return RCode(h.Flags & RCodeMask) }

// IsResponse returns true if the QR flag is set.
func (h Header) IsResponse() bool { return h.Flags&QRFlag != 0 }

// Truncated returns true if the TC (Truncated) flag is set.
func (h Header) Truncated() bool { return h.Flags&TCFlag != 0 }

// RecursionDesired returns true if the RD flag is set.
func (h Header) RecursionDesired() bool { return h.Flags&RDFlag != 0 }

// RecursionAvailable returns true if the RA flag is set.
func (h Header) RecursionAvailable() bool { return h.Flags&RAFlag != 0 }

// Authoritative returns true if the AA flag is set.
func (h Header) Authoritative() bool { return h.Flags&AAFlag != 0 }

// AuthenticData returns true if the AD (Authenticated Data) flag is set.
func (h Header) AuthenticData() bool { return h.Flags&ADFlag != 0 }

// IsTruncated reports whether a raw DNS message has the TC flag set,
// without parsing the rest of the message. Messages shorter than a header
// are never considered truncated.
func IsTruncated(msg []byte) bool {
	if len(msg) < HeaderSize {
		return false
	}
	flags := binary.BigEndian.Uint16(msg[2:4])
	return flags&TCFlag != 0
}
