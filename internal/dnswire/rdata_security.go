package dnswire

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net"
)

// TLSA is a TLS certificate association record (RFC 6698).
type TLSA struct {
	CertificateUsage uint8
	Selector         uint8
	MatchingType     uint8
	CertificateData  []byte
}

func (r *TLSA) Type() RecordType { return TypeTLSA }

func (r *TLSA) Value() string {
	return fmt.Sprintf("%d %d %d %s", r.CertificateUsage, r.Selector, r.MatchingType,
		hex.EncodeToString(r.CertificateData))
}

func readTLSA(statedLength uint16, c *Cursor) (RData, error) {
	usage, selector, matching, data, err := readCertAssociation(TypeTLSA, statedLength, c)
	if err != nil {
		return nil, err
	}
	return &TLSA{CertificateUsage: usage, Selector: selector, MatchingType: matching,
		CertificateData: data}, nil
}

// SMIMEA is an S/MIME certificate association record (RFC 8162). Its RDATA
// layout is identical to TLSA.
type SMIMEA struct {
	CertificateUsage uint8
	Selector         uint8
	MatchingType     uint8
	CertificateData  []byte
}

func (r *SMIMEA) Type() RecordType { return TypeSMIMEA }

func (r *SMIMEA) Value() string {
	return fmt.Sprintf("%d %d %d %s", r.CertificateUsage, r.Selector, r.MatchingType,
		hex.EncodeToString(r.CertificateData))
}

func readSMIMEA(statedLength uint16, c *Cursor) (RData, error) {
	usage, selector, matching, data, err := readCertAssociation(TypeSMIMEA, statedLength, c)
	if err != nil {
		return nil, err
	}
	return &SMIMEA{CertificateUsage: usage, Selector: selector, MatchingType: matching,
		CertificateData: data}, nil
}

// readCertAssociation reads the shared TLSA/SMIMEA layout: three fixed
// bytes followed by certificate data. A record must carry at least one byte
// of certificate data, so stated lengths below the three fixed bytes are a
// length error before any field is read.
func readCertAssociation(rt RecordType, statedLength uint16, c *Cursor) (usage, selector, matching uint8, data []byte, err error) {
	if statedLength < 3 {
		return 0, 0, 0, nil, &LengthError{Type: rt, Stated: statedLength, Expected: 4, AtLeast: true}
	}
	if usage, err = c.ReadU8(); err != nil {
		return 0, 0, 0, nil, err
	}
	if selector, err = c.ReadU8(); err != nil {
		return 0, 0, 0, nil, err
	}
	if matching, err = c.ReadU8(); err != nil {
		return 0, 0, 0, nil, err
	}
	if data, err = c.ReadBytes(int(statedLength) - 3); err != nil {
		return 0, 0, 0, nil, err
	}
	return usage, selector, matching, data, nil
}

// SSHFP is an SSH public key fingerprint record (RFC 4255).
type SSHFP struct {
	Algorithm       uint8
	FingerprintType uint8
	Fingerprint     []byte
}

func (r *SSHFP) Type() RecordType { return TypeSSHFP }

func (r *SSHFP) Value() string {
	return fmt.Sprintf("%d %d %s", r.Algorithm, r.FingerprintType,
		hex.EncodeToString(r.Fingerprint))
}

func readSSHFP(statedLength uint16, c *Cursor) (RData, error) {
	sshfp := &SSHFP{}
	var err error
	if sshfp.Algorithm, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if sshfp.FingerprintType, err = c.ReadU8(); err != nil {
		return nil, err
	}
	fpLen, err := subtractLength(TypeSSHFP, statedLength, 2)
	if err != nil {
		return nil, err
	}
	if sshfp.Fingerprint, err = c.ReadBytes(fpLen); err != nil {
		return nil, err
	}
	return sshfp, nil
}

// DHCID is a DHCP client identifier record (RFC 4701).
type DHCID struct {
	IdentifierTypeCode uint8
	DigestTypeCode     uint8
	Digest             []byte
}

func (r *DHCID) Type() RecordType { return TypeDHCID }

func (r *DHCID) Value() string {
	// DHCID RDATA is conventionally presented as one opaque base64 blob.
	all := make([]byte, 0, 2+len(r.Digest))
	all = append(all, r.IdentifierTypeCode, r.DigestTypeCode)
	all = append(all, r.Digest...)
	return base64.StdEncoding.EncodeToString(all)
}

func readDHCID(statedLength uint16, c *Cursor) (RData, error) {
	dhcid := &DHCID{}
	var err error
	if dhcid.IdentifierTypeCode, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if dhcid.DigestTypeCode, err = c.ReadU8(); err != nil {
		return nil, err
	}
	digestLen, err := subtractLength(TypeDHCID, statedLength, 2)
	if err != nil {
		return nil, err
	}
	if dhcid.Digest, err = c.ReadBytes(digestLen); err != nil {
		return nil, err
	}
	return dhcid, nil
}

// IPSECKEY stores IPsec keying material (RFC 4025). The gateway field's
// form depends on the gateway type: absent (0), IPv4 (1), IPv6 (2), or a
// domain name (3).
type IPSECKEY struct {
	Precedence  uint8
	GatewayType uint8
	Algorithm   uint8
	Gateway     []byte // IP bytes for gateway types 1 and 2; nil otherwise
	GatewayName string // domain name for gateway type 3
	PublicKey   []byte
}

func (r *IPSECKEY) Type() RecordType { return TypeIPSECKEY }

func (r *IPSECKEY) Value() string {
	gateway := "."
	switch r.GatewayType {
	case 1, 2:
		gateway = net.IP(r.Gateway).String()
	case 3:
		gateway = presentName(r.GatewayName)
	}
	return fmt.Sprintf("%d %d %d %s %s", r.Precedence, r.GatewayType, r.Algorithm,
		gateway, base64.StdEncoding.EncodeToString(r.PublicKey))
}

func readIPSECKEY(statedLength uint16, c *Cursor) (RData, error) {
	key := &IPSECKEY{}
	var err error
	if key.Precedence, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if key.GatewayType, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if key.Algorithm, err = c.ReadU8(); err != nil {
		return nil, err
	}

	consumed := 3
	switch key.GatewayType {
	case 1:
		if key.Gateway, err = c.ReadBytes(4); err != nil {
			return nil, err
		}
		consumed += 4
	case 2:
		if key.Gateway, err = c.ReadBytes(16); err != nil {
			return nil, err
		}
		consumed += 16
	case 3:
		// The gateway is a full, uncompressed domain name (RFC 4025
		// Section 2.5 forbids compression here, but ReadName accepts both).
		name, nameLen, err := c.ReadName()
		if err != nil {
			return nil, err
		}
		key.GatewayName = name
		consumed += nameLen
	}

	keyLen, err := subtractLength(TypeIPSECKEY, statedLength, consumed)
	if err != nil {
		return nil, err
	}
	if key.PublicKey, err = c.ReadBytes(keyLen); err != nil {
		return nil, err
	}
	return key, nil
}

// OPENPGPKEY is an OpenPGP public key record (RFC 7929). The whole RDATA
// is the transferable public key.
type OPENPGPKEY struct {
	Key []byte
}

func (r *OPENPGPKEY) Type() RecordType { return TypeOPENPGPKEY }
func (r *OPENPGPKEY) Value() string    { return base64.StdEncoding.EncodeToString(r.Key) }

func readOPENPGPKEY(statedLength uint16, c *Cursor) (RData, error) {
	if statedLength == 0 {
		return nil, &LengthError{Type: TypeOPENPGPKEY, Stated: 0, Expected: 1, AtLeast: true}
	}
	key, err := c.ReadBytes(int(statedLength))
	if err != nil {
		return nil, err
	}
	return &OPENPGPKEY{Key: key}, nil
}
