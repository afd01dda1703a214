package dnswire

import (
	"encoding/binary"
	"fmt"
)

// EDNS (Extension Mechanisms for DNS) constants per RFC 6891.
const (
	DefaultUDPPayloadSize     = 512  // Traditional DNS UDP limit (RFC 1035)
	EDNSDefaultUDPPayloadSize = 1232 // Safe EDNS size avoiding fragmentation
	EDNSMaxUDPPayloadSize     = 4096 // Maximum practical EDNS UDP size
)

// EDNSOption is one option in an OPT record's RDATA: a 16-bit code, a
// 16-bit length, and the option data.
type EDNSOption struct {
	Code uint16
	Data []byte
}

// OPT is the EDNS pseudo-record (RFC 6891). It abuses the record prefix:
// the class field carries the sender's UDP payload size and the TTL packs
// the extended RCODE, the EDNS version, and the DO flag. Those two fields
// stay in the surrounding ResourceRecord; only the options live here.
type OPT struct {
	Options []EDNSOption
}

func (r *OPT) Type() RecordType { return TypeOPT }

func (r *OPT) Value() string {
	if len(r.Options) == 0 {
		return ""
	}
	out := ""
	for i, o := range r.Options {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d:%x", o.Code, o.Data)
	}
	return out
}

func readOPT(statedLength uint16, c *Cursor) (RData, error) {
	remaining := int(statedLength)
	opt := &OPT{}
	for remaining > 0 {
		code, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		length, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		remaining -= 4 + int(length)
		if remaining < 0 {
			return nil, &LengthError{Type: TypeOPT, Stated: statedLength,
				Expected: clampUint16(int(statedLength) - remaining), AtLeast: true}
		}
		data, err := c.ReadBytes(int(length))
		if err != nil {
			return nil, err
		}
		opt.Options = append(opt.Options, EDNSOption{Code: code, Data: data})
	}
	return opt, nil
}

// MarshalOPTRecord builds the wire form of the OPT pseudo-record a query
// advertises: root name, type 41, the payload size in the class field, a
// zero TTL (no extended RCODE, version 0, DO clear), and empty RDATA.
func MarshalOPTRecord(udpPayloadSize uint16) []byte {
	b := make([]byte, 11)
	b[0] = 0 // root name
	binary.BigEndian.PutUint16(b[1:3], TypeOPT.Number())
	binary.BigEndian.PutUint16(b[3:5], udpPayloadSize)
	// TTL (4 bytes) and RDLENGTH already zero.
	return b
}

// UDPPayloadSize returns the payload size an OPT record advertises, which
// rides in the record's class field.
func (rr ResourceRecord) UDPPayloadSize() uint16 { return rr.Class }
