package dnswire

// maxRRPerSection caps the initial allocation for a record section, so a
// header declaring huge counts over a tiny message cannot force a large
// allocation before parsing fails.
const maxRRPerSection = 100

// Message is a complete decoded DNS message (RFC 1035 Section 4.1).
//
// A query carries one question; a response echoes it and fills the three
// record sections. The section counts in the header always describe the
// wire message; when decoding stops at a malformed record, the decode error
// is surfaced instead of a partially-filled Message.
type Message struct {
	Header      Header
	Question    Question
	Answers     []ResourceRecord
	Authorities []ResourceRecord
	Additionals []ResourceRecord
}

// ParseMessage decodes a full DNS message from raw bytes: header, question,
// then exactly ANCOUNT + NSCOUNT + ARCOUNT records across the three record
// sections. Decoding is stop-on-error: the first malformed record aborts
// the whole parse.
func ParseMessage(raw []byte) (*Message, error) {
	c := NewCursor(raw)

	h, err := ParseHeader(c)
	if err != nil {
		return nil, err
	}
	m := &Message{Header: h}

	for i := uint16(0); i < h.QDCount; i++ {
		q, err := ParseQuestion(c)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			m.Question = q
		}
	}

	if m.Answers, err = parseSection(c, h.ANCount); err != nil {
		return nil, err
	}
	if m.Authorities, err = parseSection(c, h.NSCount); err != nil {
		return nil, err
	}
	if m.Additionals, err = parseSection(c, h.ARCount); err != nil {
		return nil, err
	}
	return m, nil
}

func parseSection(c *Cursor, count uint16) ([]ResourceRecord, error) {
	if count == 0 {
		return nil, nil
	}
	records := make([]ResourceRecord, 0, min(int(count), maxRRPerSection))
	for i := uint16(0); i < count; i++ {
		rr, err := ParseRecord(c)
		if err != nil {
			return nil, err
		}
		records = append(records, rr)
	}
	return records, nil
}

// AllRecords returns the three record sections concatenated in wire order.
func (m *Message) AllRecords() []ResourceRecord {
	out := make([]ResourceRecord, 0, len(m.Answers)+len(m.Authorities)+len(m.Additionals))
	out = append(out, m.Answers...)
	out = append(out, m.Authorities...)
	out = append(out, m.Additionals...)
	return out
}

// Query describes one DNS query to be serialized. Responses are decoded
// with ParseMessage; only queries are ever marshalled by this client.
type Query struct {
	ID    uint16
	Flags uint16
	Name  string
	Type  RecordType

	// UDPPayloadSize, when non-zero, adds an EDNS OPT pseudo-record
	// advertising the given maximum response size.
	UDPPayloadSize uint16
}

// Marshal serializes the query to wire format.
func (q *Query) Marshal() ([]byte, error) {
	arcount := uint16(0)
	if q.UDPPayloadSize > 0 {
		arcount = 1
	}
	h := Header{ID: q.ID, Flags: q.Flags, QDCount: 1, ARCount: arcount}

	question := Question{Name: q.Name, Type: q.Type, Class: ClassIN}
	qb, err := question.Marshal()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(qb)+11)
	out = append(out, h.Marshal()...)
	out = append(out, qb...)
	if arcount == 1 {
		out = append(out, MarshalOPTRecord(q.UDPPayloadSize)...)
	}
	return out, nil
}
