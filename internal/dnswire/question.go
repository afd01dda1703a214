package dnswire

import "encoding/binary"

// ClassIN is the Internet record class (RFC 1035). It is the only class
// this client ever queries for.
const ClassIN uint16 = 1

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
type Question struct {
	Name  string
	Type  RecordType
	Class uint16
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() ([]byte, error) {
	name, err := EncodeName(q.Name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(name)+4)
	b = append(b, name...)
	var fixed [4]byte
	binary.BigEndian.PutUint16(fixed[0:2], q.Type.Number())
	binary.BigEndian.PutUint16(fixed[2:4], q.Class)
	return append(b, fixed[:]...), nil
}

// ParseQuestion reads a question from the cursor.
func ParseQuestion(c *Cursor) (Question, error) {
	name, _, err := c.ReadName()
	if err != nil {
		return Question{}, err
	}
	typeNumber, err := c.ReadU16()
	if err != nil {
		return Question{}, err
	}
	class, err := c.ReadU16()
	if err != nil {
		return Question{}, err
	}
	return Question{Name: name, Type: RecordTypeFromNumber(typeNumber), Class: class}, nil
}
