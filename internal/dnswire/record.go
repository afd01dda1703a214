package dnswire

import "fmt"

// RData is the decoded, type-specific data of one resource record.
//
// Every implementation is an immutable struct of typed fields produced by a
// decoder that consumed exactly the record's stated RDATA length. Value
// renders the data in zone-file presentation form.
type RData interface {
	Type() RecordType
	Value() string
}

// ResourceRecord is one decoded resource record: the common name, class and
// TTL prefix plus the type-specific data.
type ResourceRecord struct {
	Name  string
	Class uint16
	TTL   uint32
	Data  RData
}

// ParseRecord reads one resource record from the cursor: the owner name,
// the fixed type/class/TTL/RDLENGTH prefix, and the RDATA decoded by the
// registry entry for the record's type.
//
// The RDLENGTH from the wire is passed to the decoder as its stated length,
// and the decoder must consume exactly that many bytes. A decoder that
// consumes a different amount indicates either a decoder bug or adversarial
// input, and is reported as a hard decode failure rather than being
// resynchronized.
func ParseRecord(c *Cursor) (ResourceRecord, error) {
	name, _, err := c.ReadName()
	if err != nil {
		return ResourceRecord{}, err
	}
	typeNumber, err := c.ReadU16()
	if err != nil {
		return ResourceRecord{}, err
	}
	class, err := c.ReadU16()
	if err != nil {
		return ResourceRecord{}, err
	}
	ttl, err := c.ReadU32()
	if err != nil {
		return ResourceRecord{}, err
	}
	rdlen, err := c.ReadU16()
	if err != nil {
		return ResourceRecord{}, err
	}

	rt := RecordTypeFromNumber(typeNumber)
	start := c.Pos()

	data, err := decodeRData(rt, rdlen, c)
	if err != nil {
		return ResourceRecord{}, err
	}
	if c.Pos() != start+int(rdlen) {
		return ResourceRecord{}, fmt.Errorf("%w: %s decoder consumed %d bytes of %d-byte RDATA",
			ErrWire, rt, c.Pos()-start, rdlen)
	}

	return ResourceRecord{Name: name, Class: class, TTL: ttl, Data: data}, nil
}

// decodeRData dispatches to the registry decoder for rt, or captures the
// raw bytes for types the registry does not model.
func decodeRData(rt RecordType, statedLength uint16, c *Cursor) (RData, error) {
	if info, ok := typesByNumber[rt]; ok {
		return info.decode(statedLength, c)
	}
	return readOther(rt, statedLength, c)
}

// Other holds the verbatim RDATA of a record type the registry does not
// model. The bytes are preserved, never interpreted.
type Other struct {
	TypeNumber RecordType
	Bytes      []byte
}

func (r *Other) Type() RecordType { return r.TypeNumber }

func (r *Other) Value() string {
	return fmt.Sprintf("\\# %d %x", len(r.Bytes), r.Bytes)
}

func readOther(rt RecordType, statedLength uint16, c *Cursor) (RData, error) {
	bytes, err := c.ReadBytes(int(statedLength))
	if err != nil {
		return nil, err
	}
	return &Other{TypeNumber: rt, Bytes: bytes}, nil
}
