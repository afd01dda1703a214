package dnswire

import (
	"fmt"
	"net"
	"strings"
)

// A is an IPv4 address record (RFC 1035 Section 3.4.1).
type A struct {
	Addr net.IP
}

func (r *A) Type() RecordType { return TypeA }
func (r *A) Value() string    { return r.Addr.String() }

func readA(statedLength uint16, c *Cursor) (RData, error) {
	addr, err := c.ReadBytes(4)
	if err != nil {
		return nil, err
	}
	if statedLength != 4 {
		return nil, &LengthError{Type: TypeA, Stated: statedLength, Expected: 4}
	}
	return &A{Addr: net.IP(addr)}, nil
}

// AAAA is an IPv6 address record (RFC 3596).
type AAAA struct {
	Addr net.IP
}

func (r *AAAA) Type() RecordType { return TypeAAAA }
func (r *AAAA) Value() string    { return r.Addr.String() }

func readAAAA(statedLength uint16, c *Cursor) (RData, error) {
	addr, err := c.ReadBytes(16)
	if err != nil {
		return nil, err
	}
	if statedLength != 16 {
		return nil, &LengthError{Type: TypeAAAA, Stated: statedLength, Expected: 16}
	}
	return &AAAA{Addr: net.IP(addr)}, nil
}

// CNAME is a canonical name record (RFC 1035 Section 3.3.1).
type CNAME struct {
	Target string
}

func (r *CNAME) Type() RecordType { return TypeCNAME }
func (r *CNAME) Value() string    { return presentName(r.Target) }

func readCNAME(_ uint16, c *Cursor) (RData, error) {
	target, _, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	return &CNAME{Target: target}, nil
}

// NS is an authoritative name server record (RFC 1035 Section 3.3.11).
type NS struct {
	Target string
}

func (r *NS) Type() RecordType { return TypeNS }
func (r *NS) Value() string    { return presentName(r.Target) }

func readNS(_ uint16, c *Cursor) (RData, error) {
	target, _, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	return &NS{Target: target}, nil
}

// PTR is a domain name pointer record (RFC 1035 Section 3.3.12), used for
// reverse lookups.
type PTR struct {
	Target string
}

func (r *PTR) Type() RecordType { return TypePTR }
func (r *PTR) Value() string    { return presentName(r.Target) }

func readPTR(_ uint16, c *Cursor) (RData, error) {
	target, _, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	return &PTR{Target: target}, nil
}

// SOA is a start-of-authority record (RFC 1035 Section 3.3.13).
type SOA struct {
	Mname   string // primary nameserver
	Rname   string // responsible person's mailbox
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (r *SOA) Type() RecordType { return TypeSOA }

func (r *SOA) Value() string {
	return fmt.Sprintf("%s %s %d %d %d %d %d",
		presentName(r.Mname), presentName(r.Rname),
		r.Serial, r.Refresh, r.Retry, r.Expire, r.Minimum)
}

func readSOA(_ uint16, c *Cursor) (RData, error) {
	mname, _, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	rname, _, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	soa := &SOA{Mname: mname, Rname: rname}
	for _, field := range []*uint32{&soa.Serial, &soa.Refresh, &soa.Retry, &soa.Expire, &soa.Minimum} {
		if *field, err = c.ReadU32(); err != nil {
			return nil, err
		}
	}
	return soa, nil
}

// HINFO is a host information record (RFC 1035 Section 3.3.2).
type HINFO struct {
	CPU string
	OS  string
}

func (r *HINFO) Type() RecordType { return TypeHINFO }
func (r *HINFO) Value() string    { return fmt.Sprintf("%q %q", r.CPU, r.OS) }

func readHINFO(_ uint16, c *Cursor) (RData, error) {
	cpu, err := c.readCharString()
	if err != nil {
		return nil, err
	}
	osName, err := c.readCharString()
	if err != nil {
		return nil, err
	}
	return &HINFO{CPU: string(cpu), OS: string(osName)}, nil
}

// MX is a mail exchange record (RFC 1035 Section 3.3.9).
type MX struct {
	Preference uint16
	Exchange   string
}

func (r *MX) Type() RecordType { return TypeMX }
func (r *MX) Value() string    { return fmt.Sprintf("%d %s", r.Preference, presentName(r.Exchange)) }

func readMX(_ uint16, c *Cursor) (RData, error) {
	preference, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	exchange, _, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	return &MX{Preference: preference, Exchange: exchange}, nil
}

// TXT is a text record (RFC 1035 Section 3.3.14): one or more
// character-strings filling the whole RDATA.
type TXT struct {
	Messages []string
}

func (r *TXT) Type() RecordType { return TypeTXT }

func (r *TXT) Value() string {
	quoted := make([]string, len(r.Messages))
	for i, m := range r.Messages {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return strings.Join(quoted, " ")
}

func readTXT(statedLength uint16, c *Cursor) (RData, error) {
	var messages []string
	remaining := int(statedLength)
	for remaining > 0 {
		msg, err := c.readCharString()
		if err != nil {
			return nil, err
		}
		remaining -= 1 + len(msg)
		if remaining < 0 {
			// The last character-string ran past the stated RDATA length.
			return nil, &LengthError{Type: TypeTXT, Stated: statedLength,
				Expected: clampUint16(int(statedLength) - remaining), AtLeast: true}
		}
		messages = append(messages, string(msg))
	}
	if messages == nil {
		return nil, ErrUnexpectedEOF
	}
	return &TXT{Messages: messages}, nil
}

// SRV is a service location record (RFC 2782).
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   string
}

func (r *SRV) Type() RecordType { return TypeSRV }

func (r *SRV) Value() string {
	return fmt.Sprintf("%d %d %d %s", r.Priority, r.Weight, r.Port, presentName(r.Target))
}

func readSRV(_ uint16, c *Cursor) (RData, error) {
	srv := &SRV{}
	var err error
	if srv.Priority, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if srv.Weight, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if srv.Port, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if srv.Target, _, err = c.ReadName(); err != nil {
		return nil, err
	}
	return srv, nil
}

// NAPTR is a naming authority pointer record (RFC 3403).
type NAPTR struct {
	Order       uint16
	Preference  uint16
	Flags       string
	Service     string
	Regex       string
	Replacement string
}

func (r *NAPTR) Type() RecordType { return TypeNAPTR }

func (r *NAPTR) Value() string {
	return fmt.Sprintf("%d %d %q %q %q %s",
		r.Order, r.Preference, r.Flags, r.Service, r.Regex, presentName(r.Replacement))
}

func readNAPTR(_ uint16, c *Cursor) (RData, error) {
	naptr := &NAPTR{}
	var err error
	if naptr.Order, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if naptr.Preference, err = c.ReadU16(); err != nil {
		return nil, err
	}
	for _, field := range []*string{&naptr.Flags, &naptr.Service, &naptr.Regex} {
		s, err := c.readCharString()
		if err != nil {
			return nil, err
		}
		*field = string(s)
	}
	if naptr.Replacement, _, err = c.ReadName(); err != nil {
		return nil, err
	}
	return naptr, nil
}

// URI is a uniform resource identifier record (RFC 7553).
type URI struct {
	Priority uint16
	Weight   uint16
	Target   string
}

func (r *URI) Type() RecordType { return TypeURI }
func (r *URI) Value() string    { return fmt.Sprintf("%d %d %q", r.Priority, r.Weight, r.Target) }

func readURI(statedLength uint16, c *Cursor) (RData, error) {
	uri := &URI{}
	var err error
	if uri.Priority, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if uri.Weight, err = c.ReadU16(); err != nil {
		return nil, err
	}
	targetLen, err := subtractLength(TypeURI, statedLength, 4)
	if err != nil {
		return nil, err
	}
	target, err := c.ReadBytes(targetLen)
	if err != nil {
		return nil, err
	}
	uri.Target = string(target)
	return uri, nil
}

// CAA is a certification authority authorization record (RFC 8659).
type CAA struct {
	Flags uint8
	Tag   string
	Data  []byte
}

// Critical reports whether the issuer-critical bit is set.
func (r *CAA) Critical() bool { return r.Flags&0x80 != 0 }

func (r *CAA) Type() RecordType { return TypeCAA }
func (r *CAA) Value() string    { return fmt.Sprintf("%d %s %q", r.Flags, r.Tag, r.Data) }

func readCAA(statedLength uint16, c *Cursor) (RData, error) {
	flags, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	tag, err := c.readCharString()
	if err != nil {
		return nil, err
	}
	dataLen, err := subtractLength(TypeCAA, statedLength, 2+len(tag))
	if err != nil {
		return nil, err
	}
	data, err := c.ReadBytes(dataLen)
	if err != nil {
		return nil, err
	}
	return &CAA{Flags: flags, Tag: string(tag), Data: data}, nil
}

// EUI48 is a 48-bit extended unique identifier record (RFC 7043).
type EUI48 struct {
	Identifier [6]byte
}

func (r *EUI48) Type() RecordType { return TypeEUI48 }

func (r *EUI48) Value() string {
	b := r.Identifier
	return fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x", b[0], b[1], b[2], b[3], b[4], b[5])
}

func readEUI48(statedLength uint16, c *Cursor) (RData, error) {
	bytes, err := c.ReadBytes(6)
	if err != nil {
		return nil, err
	}
	if statedLength != 6 {
		return nil, &LengthError{Type: TypeEUI48, Stated: statedLength, Expected: 6}
	}
	eui := &EUI48{}
	copy(eui.Identifier[:], bytes)
	return eui, nil
}

// EUI64 is a 64-bit extended unique identifier record (RFC 7043).
type EUI64 struct {
	Identifier [8]byte
}

func (r *EUI64) Type() RecordType { return TypeEUI64 }

func (r *EUI64) Value() string {
	b := r.Identifier
	return fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x-%02x-%02x",
		b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7])
}

func readEUI64(statedLength uint16, c *Cursor) (RData, error) {
	bytes, err := c.ReadBytes(8)
	if err != nil {
		return nil, err
	}
	if statedLength != 8 {
		return nil, &LengthError{Type: TypeEUI64, Stated: statedLength, Expected: 8}
	}
	eui := &EUI64{}
	copy(eui.Identifier[:], bytes)
	return eui, nil
}

// LOC is a location information record (RFC 1876). The size and precision
// fields are base/exponent encoded; they are kept in wire form here.
type LOC struct {
	Version             uint8
	Size                uint8
	HorizontalPrecision uint8
	VerticalPrecision   uint8
	Latitude            uint32
	Longitude           uint32
	Altitude            uint32
}

func (r *LOC) Type() RecordType { return TypeLOC }

func (r *LOC) Value() string {
	return fmt.Sprintf("%s %s %s", presentCoordinate(r.Latitude, "N", "S"),
		presentCoordinate(r.Longitude, "E", "W"), presentAltitude(r.Altitude))
}

func readLOC(statedLength uint16, c *Cursor) (RData, error) {
	if statedLength != 16 {
		return nil, &LengthError{Type: TypeLOC, Stated: statedLength, Expected: 16}
	}
	loc := &LOC{}
	var err error
	for _, field := range []*uint8{&loc.Version, &loc.Size, &loc.HorizontalPrecision, &loc.VerticalPrecision} {
		if *field, err = c.ReadU8(); err != nil {
			return nil, err
		}
	}
	for _, field := range []*uint32{&loc.Latitude, &loc.Longitude, &loc.Altitude} {
		if *field, err = c.ReadU32(); err != nil {
			return nil, err
		}
	}
	return loc, nil
}

// presentCoordinate renders a LOC latitude or longitude in degrees,
// minutes, and thousandths of a second relative to the equator/meridian
// midpoint (2^31).
func presentCoordinate(v uint32, positive, negative string) string {
	const midpoint = uint32(1) << 31
	hemisphere := positive
	var millis uint32
	if v >= midpoint {
		millis = v - midpoint
	} else {
		millis = midpoint - v
		hemisphere = negative
	}
	degrees := millis / (1000 * 60 * 60)
	millis %= 1000 * 60 * 60
	minutes := millis / (1000 * 60)
	millis %= 1000 * 60
	return fmt.Sprintf("%d %d %.3f %s", degrees, minutes, float64(millis)/1000, hemisphere)
}

// presentAltitude renders a LOC altitude, which is stored in centimetres
// offset by 100000 metres.
func presentAltitude(v uint32) string {
	metres := (float64(v) - 10000000) / 100
	return fmt.Sprintf("%.2fm", metres)
}

// presentName renders a decoded name with the trailing root dot, as zone
// files do.
func presentName(name string) string {
	if name == "" {
		return "."
	}
	return name + "."
}
