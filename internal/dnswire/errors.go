// Package dnswire implements the DNS message wire format (RFC 1035 and
// extensions): query encoding, response decoding, and one decoder per
// supported resource record type.
//
// Standards Compliance:
//
// This package implements DNS protocol features from the following RFCs:
//
//   - RFC 1035: Domain Names - Implementation and Specification (core DNS protocol)
//   - RFC 1876: A Means for Expressing Location Information in the DNS (LOC)
//   - RFC 2782: A DNS RR for specifying the location of services (SRV)
//   - RFC 3403: Dynamic Delegation Discovery System (NAPTR)
//   - RFC 3596: DNS Extensions to Support IPv6 (AAAA records)
//   - RFC 4025: A Method for Storing IPsec Keying Material in DNS (IPSECKEY)
//   - RFC 4034: DNSSEC Resource Records (RRSIG, NSEC, DNSKEY, DS)
//   - RFC 4255: Using DNS to Securely Publish SSH Key Fingerprints (SSHFP)
//   - RFC 4701: A DNS RR for Encoding DHCP Information (DHCID)
//   - RFC 5155: DNSSEC Hashed Authenticated Denial of Existence (NSEC3, NSEC3PARAM)
//   - RFC 6698: DNS-Based Authentication of Named Entities (TLSA)
//   - RFC 6891: Extension Mechanisms for DNS (EDNS, OPT records)
//   - RFC 7553: The URI DNS Resource Record (URI)
//   - RFC 7929: OpenPGP Key in DNS (OPENPGPKEY)
//   - RFC 8162: Using Secure DNS to Associate Certificates (SMIMEA)
//   - RFC 8659: DNS Certification Authority Authorization (CAA)
//
// Error Handling:
//
// All decode failures wrap the ErrWire sentinel via fmt.Errorf("...: %w", err)
// so callers can detect wire-level problems with errors.Is. Running out of
// bytes mid-field is always reported as ErrUnexpectedEOF; a record whose
// stated RDATA length contradicts its own structure is reported as a
// *LengthError carrying both the stated and the expected lengths.
package dnswire

import (
	"errors"
	"fmt"
)

var (
	// ErrWire is the sentinel error for DNS wire format violations.
	// Wrap this with fmt.Errorf("context: %w", ErrWire) to add context.
	ErrWire = errors.New("dns wire error")

	// ErrUnexpectedEOF is returned whenever the message buffer ends before a
	// field could be read in full. Every primitive cursor read reports this
	// same error, so record decoders signal "buffer ended abruptly"
	// uniformly.
	ErrUnexpectedEOF = fmt.Errorf("%w: unexpected end of message", ErrWire)

	// ErrLabelTooLong is returned for a name label longer than 63 bytes.
	ErrLabelTooLong = fmt.Errorf("%w: label exceeds 63 bytes", ErrWire)

	// ErrNameTooLong is returned for an encoded name longer than 255 bytes.
	ErrNameTooLong = fmt.Errorf("%w: name exceeds 255 bytes", ErrWire)

	// ErrPointerLoop is returned when a compression pointer does not point
	// strictly backwards, or when too many pointers are chained.
	ErrPointerLoop = fmt.Errorf("%w: compression pointer loop", ErrWire)

	// ErrReservedLabelBits is returned for a label length byte using the
	// reserved 01/10 high-bit patterns.
	ErrReservedLabelBits = fmt.Errorf("%w: reserved label bits set", ErrWire)
)

// LengthError reports a record whose stated RDATA length is inconsistent
// with the record's own structure. It is distinct from ErrUnexpectedEOF:
// the buffer may well contain enough bytes, but the declared length cannot
// be reconciled with the fixed fields that were read.
type LengthError struct {
	Type     RecordType
	Stated   uint16 // RDLENGTH as declared on the wire
	Expected uint16 // length implied by the record's fields
	AtLeast  bool   // Expected is a minimum rather than an exact value
}

func (e *LengthError) Error() string {
	if e.AtLeast {
		return fmt.Sprintf("dns wire error: %s record length %d shorter than minimum %d",
			e.Type, e.Stated, e.Expected)
	}
	return fmt.Sprintf("dns wire error: %s record length %d does not match computed length %d",
		e.Type, e.Stated, e.Expected)
}

// Unwrap makes errors.Is(err, ErrWire) succeed for length errors.
func (e *LengthError) Unwrap() error { return ErrWire }

// subtractLength computes the length of a trailing variable field as
// stated − consumed. The stated length comes straight from untrusted wire
// input, so the subtraction is checked: underflow reports a *LengthError
// instead of wrapping around.
func subtractLength(rt RecordType, stated uint16, consumed int) (int, error) {
	if consumed < 0 || int(stated) < consumed {
		return 0, &LengthError{Type: rt, Stated: stated, Expected: clampUint16(consumed), AtLeast: true}
	}
	return int(stated) - consumed, nil
}

func clampUint16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xFFFF {
		return 0xFFFF
	}
	return uint16(v)
}
