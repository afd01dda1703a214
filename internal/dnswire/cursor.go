package dnswire

import "encoding/binary"

// Cursor is a positional reader over a single DNS message buffer.
//
// The cursor borrows the buffer for the duration of one decode pass and
// never copies or aliases it; reads that return variable-length data hand
// back owned copies so decoded records can outlive the raw message.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// ReadU8 reads one byte, advancing the position.
func (c *Cursor) ReadU8() (uint8, error) {
	if c.pos+1 > len(c.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// ReadU16 reads a big-endian 16-bit integer, advancing the position.
func (c *Cursor) ReadU16() (uint16, error) {
	if c.pos+2 > len(c.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos : c.pos+2])
	c.pos += 2
	return v, nil
}

// ReadU32 reads a big-endian 32-bit integer, advancing the position.
func (c *Cursor) ReadU32() (uint32, error) {
	if c.pos+4 > len(c.buf) {
		return 0, ErrUnexpectedEOF
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos : c.pos+4])
	c.pos += 4
	return v, nil
}

// ReadBytes reads exactly n bytes and returns an owned copy.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, ErrUnexpectedEOF
	}
	out := make([]byte, n)
	copy(out, c.buf[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// readCharString reads a single length-prefixed character-string
// (RFC 1035 Section 3.3): one length byte followed by that many bytes.
func (c *Cursor) readCharString() ([]byte, error) {
	n, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	return c.ReadBytes(int(n))
}
