package dnswire

import (
	"fmt"
	"strings"
)

// maxPointerChain bounds the number of compression pointers followed while
// decoding a single name. Combined with the strictly-backwards check this
// makes pointer loops impossible, but a bound keeps adversarial chains from
// costing more than a handful of hops.
const maxPointerChain = 20

// maxEncodedNameLength is the RFC 1035 limit on a wire-encoded name.
const maxEncodedNameLength = 255

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// Names are encoded as length-prefixed labels terminated by a zero-length
// root label: "example.com" → [7]"example"[3]"com"[0].
//
// Constraints:
//   - Each label max 63 bytes
//   - Total encoded name max 255 bytes
//   - ASCII only (IDN conversion happens before this layer)
func EncodeName(domain string) ([]byte, error) {
	domain = trimDot(domain)
	if domain == "" {
		return []byte{0}, nil // root
	}

	out := make([]byte, 0, len(domain)+2)
	labelStart := 0
	for i := 0; i <= len(domain); i++ {
		if i == len(domain) || domain[i] == '.' {
			if i == labelStart {
				return nil, fmt.Errorf("%w: invalid domain name (empty label): %q", ErrWire, domain)
			}
			label := domain[labelStart:i]

			for j := 0; j < len(label); j++ {
				if label[j] > 0x7F {
					return nil, fmt.Errorf("%w: domain name must be ASCII: %q", ErrWire, domain)
				}
			}
			if len(label) > 63 {
				return nil, ErrLabelTooLong
			}

			out = append(out, byte(len(label)))
			out = append(out, label...)
			labelStart = i + 1
		}
	}
	out = append(out, 0)

	if len(out) > maxEncodedNameLength {
		return nil, ErrNameTooLong
	}
	return out, nil
}

// ReadName decodes a possibly-compressed domain name starting at the
// cursor's current position (RFC 1035 Section 4.1.4).
//
// A length byte with the two high bits set (0xC0) is a 14-bit pointer to an
// earlier offset in the same message; decoding continues there and the name
// terminates at the pointed-to labels. Each pointer must point strictly
// before the position it occupies, and at most maxPointerChain pointers are
// followed.
//
// The second return value is the number of bytes the name occupies at the
// original position: exactly 2 once a pointer is reached, otherwise the
// literal label bytes plus the root terminator. Record decoders subtract it
// from the stated RDATA length to size variable trailing fields.
func (c *Cursor) ReadName() (string, int, error) {
	start := c.pos
	labels := make([]string, 0, 6)

	pos := c.pos
	consumed := -1 // -1 while still reading at the original position
	encodedLen := 1
	hops := 0
	ceiling := start // every pointer target must precede the current segment

	for {
		if pos >= len(c.buf) {
			return "", 0, ErrUnexpectedEOF
		}
		labelLen := c.buf[pos]

		switch {
		case labelLen == 0:
			// Root label terminates the name.
			pos++
			if consumed < 0 {
				consumed = pos - start
			}
			c.pos = start + consumed
			return joinLabels(labels), consumed, nil

		case labelLen&0xC0 == 0xC0:
			if pos+2 > len(c.buf) {
				return "", 0, ErrUnexpectedEOF
			}
			target := int(labelLen&0x3F)<<8 | int(c.buf[pos+1])
			// Targets must strictly decrease across hops, so a chain can
			// only move backwards through the message and must terminate.
			if target >= ceiling {
				return "", 0, fmt.Errorf("%w: pointer to offset %d does not precede %d",
					ErrPointerLoop, target, ceiling)
			}
			hops++
			if hops > maxPointerChain {
				return "", 0, ErrPointerLoop
			}
			if consumed < 0 {
				consumed = pos + 2 - start
			}
			pos = target
			ceiling = target

		case labelLen&0xC0 != 0:
			return "", 0, ErrReservedLabelBits

		default:
			if pos+1+int(labelLen) > len(c.buf) {
				return "", 0, ErrUnexpectedEOF
			}
			encodedLen += 1 + int(labelLen)
			if encodedLen > maxEncodedNameLength {
				return "", 0, ErrNameTooLong
			}
			label := c.buf[pos+1 : pos+1+int(labelLen)]
			for _, b := range label {
				if b > 0x7F {
					return "", 0, fmt.Errorf("%w: decoded name was not ASCII", ErrWire)
				}
			}
			labels = append(labels, string(label))
			pos += 1 + int(labelLen)
		}
	}
}

// trimDot removes all trailing dots from a string.
func trimDot(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// joinLabels concatenates DNS labels with dots.
func joinLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return labels[0]
	}
	totalSize := len(labels) - 1
	for _, label := range labels {
		totalSize += len(label)
	}
	var b strings.Builder
	b.Grow(totalSize)
	b.WriteString(labels[0])
	for i := 1; i < len(labels); i++ {
		b.WriteByte('.')
		b.WriteString(labels[i])
	}
	return b.String()
}

// NormalizeName returns a lowercase DNS name without trailing dots, for
// case-insensitive comparisons per RFC 4343.
func NormalizeName(name string) string {
	return strings.ToLower(trimDot(name))
}
