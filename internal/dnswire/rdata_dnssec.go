package dnswire

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

// DS is a delegation signer record (RFC 4034 Section 5).
type DS struct {
	KeyTag     uint16
	Algorithm  uint8
	DigestType uint8
	Digest     []byte
}

func (r *DS) Type() RecordType { return TypeDS }

func (r *DS) Value() string {
	return fmt.Sprintf("%d %d %d %s", r.KeyTag, r.Algorithm, r.DigestType,
		strings.ToUpper(hex.EncodeToString(r.Digest)))
}

func readDS(statedLength uint16, c *Cursor) (RData, error) {
	ds := &DS{}
	var err error
	if ds.KeyTag, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if ds.Algorithm, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if ds.DigestType, err = c.ReadU8(); err != nil {
		return nil, err
	}
	digestLen, err := subtractLength(TypeDS, statedLength, 4)
	if err != nil {
		return nil, err
	}
	if ds.Digest, err = c.ReadBytes(digestLen); err != nil {
		return nil, err
	}
	return ds, nil
}

// DNSKEY is a DNSSEC public key record (RFC 4034 Section 2).
type DNSKEY struct {
	Flags     uint16
	Protocol  uint8 // must be 3
	Algorithm uint8
	PublicKey []byte
}

func (r *DNSKEY) Type() RecordType { return TypeDNSKEY }

func (r *DNSKEY) Value() string {
	return fmt.Sprintf("%d %d %d %s", r.Flags, r.Protocol, r.Algorithm,
		base64.StdEncoding.EncodeToString(r.PublicKey))
}

func readDNSKEY(statedLength uint16, c *Cursor) (RData, error) {
	key := &DNSKEY{}
	var err error
	if key.Flags, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if key.Protocol, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if key.Algorithm, err = c.ReadU8(); err != nil {
		return nil, err
	}
	keyLen, err := subtractLength(TypeDNSKEY, statedLength, 4)
	if err != nil {
		return nil, err
	}
	if key.PublicKey, err = c.ReadBytes(keyLen); err != nil {
		return nil, err
	}
	return key, nil
}

// RRSIG is a DNSSEC signature record (RFC 4034 Section 3).
type RRSIG struct {
	TypeCovered         RecordType
	Algorithm           uint8
	Labels              uint8
	OriginalTTL         uint32
	SignatureExpiration uint32
	SignatureInception  uint32
	KeyTag              uint16
	SignersName         string
	Signature           []byte
}

func (r *RRSIG) Type() RecordType { return TypeRRSIG }

func (r *RRSIG) Value() string {
	return fmt.Sprintf("%s %d %d %d %d %d %d %s %s",
		r.TypeCovered, r.Algorithm, r.Labels, r.OriginalTTL,
		r.SignatureExpiration, r.SignatureInception, r.KeyTag,
		presentName(r.SignersName),
		base64.StdEncoding.EncodeToString(r.Signature))
}

func readRRSIG(statedLength uint16, c *Cursor) (RData, error) {
	sig := &RRSIG{}
	typeCovered, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	sig.TypeCovered = RecordTypeFromNumber(typeCovered)
	if sig.Algorithm, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if sig.Labels, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if sig.OriginalTTL, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if sig.SignatureExpiration, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if sig.SignatureInception, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if sig.KeyTag, err = c.ReadU16(); err != nil {
		return nil, err
	}
	signersName, nameLen, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	sig.SignersName = signersName
	sigLen, err := subtractLength(TypeRRSIG, statedLength, 18+nameLen)
	if err != nil {
		return nil, err
	}
	if sig.Signature, err = c.ReadBytes(sigLen); err != nil {
		return nil, err
	}
	return sig, nil
}

// NSEC is a denial-of-existence record (RFC 4034 Section 4). The type bit
// maps list the RR types present at the owner name.
type NSEC struct {
	NextDomainName string
	TypeBitMaps    []byte
}

func (r *NSEC) Type() RecordType { return TypeNSEC }

func (r *NSEC) Value() string {
	return fmt.Sprintf("%s %s", presentName(r.NextDomainName), presentTypeBitMaps(r.TypeBitMaps))
}

func readNSEC(statedLength uint16, c *Cursor) (RData, error) {
	next, nameLen, err := c.ReadName()
	if err != nil {
		return nil, err
	}
	mapsLen, err := subtractLength(TypeNSEC, statedLength, nameLen)
	if err != nil {
		return nil, err
	}
	maps, err := c.ReadBytes(mapsLen)
	if err != nil {
		return nil, err
	}
	return &NSEC{NextDomainName: next, TypeBitMaps: maps}, nil
}

// NSEC3 is a hashed denial-of-existence record (RFC 5155 Section 3).
type NSEC3 struct {
	HashAlgorithm       uint8
	Flags               uint8
	Iterations          uint16
	Salt                []byte
	NextHashedOwnerName []byte
	TypeBitMaps         []byte
}

func (r *NSEC3) Type() RecordType { return TypeNSEC3 }

func (r *NSEC3) Value() string {
	return fmt.Sprintf("%d %d %d %s %s %s",
		r.HashAlgorithm, r.Flags, r.Iterations,
		presentSalt(r.Salt),
		strings.ToUpper(hex.EncodeToString(r.NextHashedOwnerName)),
		presentTypeBitMaps(r.TypeBitMaps))
}

func readNSEC3(statedLength uint16, c *Cursor) (RData, error) {
	nsec3 := &NSEC3{}
	var err error
	if nsec3.HashAlgorithm, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if nsec3.Flags, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if nsec3.Iterations, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if nsec3.Salt, err = c.readCharString(); err != nil {
		return nil, err
	}
	if nsec3.NextHashedOwnerName, err = c.readCharString(); err != nil {
		return nil, err
	}
	consumed := 1 + 1 + 2 + 1 + len(nsec3.Salt) + 1 + len(nsec3.NextHashedOwnerName)
	mapsLen, err := subtractLength(TypeNSEC3, statedLength, consumed)
	if err != nil {
		return nil, err
	}
	if nsec3.TypeBitMaps, err = c.ReadBytes(mapsLen); err != nil {
		return nil, err
	}
	return nsec3, nil
}

// NSEC3PARAM carries the NSEC3 parameters used by a zone (RFC 5155
// Section 4). Its RDATA has no variable tail, so the stated length must
// equal the fields plus the salt exactly.
type NSEC3PARAM struct {
	HashAlgorithm uint8
	Flags         uint8
	Iterations    uint16
	Salt          []byte
}

func (r *NSEC3PARAM) Type() RecordType { return TypeNSEC3PARAM }

func (r *NSEC3PARAM) Value() string {
	return fmt.Sprintf("%d %d %d %s", r.HashAlgorithm, r.Flags, r.Iterations, presentSalt(r.Salt))
}

func readNSEC3PARAM(statedLength uint16, c *Cursor) (RData, error) {
	param := &NSEC3PARAM{}
	var err error
	if param.HashAlgorithm, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if param.Flags, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if param.Iterations, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if param.Salt, err = c.readCharString(); err != nil {
		return nil, err
	}
	expected := clampUint16(1 + 1 + 2 + 1 + len(param.Salt))
	if statedLength != expected {
		return nil, &LengthError{Type: TypeNSEC3PARAM, Stated: statedLength, Expected: expected}
	}
	return param, nil
}

// presentSalt renders an NSEC3 salt: "-" when empty, hex otherwise.
func presentSalt(salt []byte) string {
	if len(salt) == 0 {
		return "-"
	}
	return strings.ToUpper(hex.EncodeToString(salt))
}

// presentTypeBitMaps renders an NSEC/NSEC3 type bit map as the list of
// record type names it encodes (RFC 4034 Section 4.1.2).
func presentTypeBitMaps(maps []byte) string {
	var names []string
	for len(maps) >= 2 {
		window := uint16(maps[0])
		bitmapLen := int(maps[1])
		maps = maps[2:]
		if bitmapLen > len(maps) {
			break
		}
		for i, b := range maps[:bitmapLen] {
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>bit) != 0 {
					n := window<<8 | uint16(i*8+bit)
					names = append(names, RecordTypeFromNumber(n).String())
				}
			}
		}
		maps = maps[bitmapLen:]
	}
	return strings.Join(names, " ")
}
