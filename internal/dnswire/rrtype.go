package dnswire

import (
	"strconv"
	"strings"
)

// RecordType represents a DNS resource record type number. Known types have
// named constants; any other value is carried through as-is and decoded
// into an Other record.
type RecordType uint16

const (
	TypeA          RecordType = 1   // IPv4 address
	TypeNS         RecordType = 2   // Authoritative name server
	TypeCNAME      RecordType = 5   // Canonical name (alias)
	TypeSOA        RecordType = 6   // Start of Authority
	TypePTR        RecordType = 12  // Domain name pointer (reverse DNS)
	TypeHINFO      RecordType = 13  // Host information
	TypeMX         RecordType = 15  // Mail exchange
	TypeTXT        RecordType = 16  // Text strings
	TypeAAAA       RecordType = 28  // IPv6 address (RFC 3596)
	TypeLOC        RecordType = 29  // Location information (RFC 1876)
	TypeSRV        RecordType = 33  // Service location (RFC 2782)
	TypeNAPTR      RecordType = 35  // Naming authority pointer (RFC 3403)
	TypeOPT        RecordType = 41  // EDNS pseudo-record (RFC 6891)
	TypeDS         RecordType = 43  // Delegation signer (RFC 4034)
	TypeSSHFP      RecordType = 44  // SSH key fingerprint (RFC 4255)
	TypeIPSECKEY   RecordType = 45  // IPsec keying material (RFC 4025)
	TypeRRSIG      RecordType = 46  // DNSSEC signature (RFC 4034)
	TypeNSEC       RecordType = 47  // Denial of existence (RFC 4034)
	TypeDNSKEY     RecordType = 48  // DNSSEC public key (RFC 4034)
	TypeDHCID      RecordType = 49  // DHCP identifier (RFC 4701)
	TypeNSEC3      RecordType = 50  // Hashed denial of existence (RFC 5155)
	TypeNSEC3PARAM RecordType = 51  // NSEC3 parameters (RFC 5155)
	TypeTLSA       RecordType = 52  // TLS certificate association (RFC 6698)
	TypeSMIMEA     RecordType = 53  // S/MIME certificate association (RFC 8162)
	TypeOPENPGPKEY RecordType = 61  // OpenPGP public key (RFC 7929)
	TypeEUI48      RecordType = 108 // 48-bit extended unique identifier
	TypeEUI64      RecordType = 109 // 64-bit extended unique identifier
	TypeURI        RecordType = 256 // Uniform resource identifier (RFC 7553)
	TypeCAA        RecordType = 257 // Certification authority authorization (RFC 8659)
)

// decodeFunc decodes one record's RDATA. statedLength is the RDLENGTH from
// the wire and must be consumed exactly.
type decodeFunc func(statedLength uint16, c *Cursor) (RData, error)

// recordTypeInfo is one entry of the closed record-type registry.
type recordTypeInfo struct {
	number RecordType
	name   string
	decode decodeFunc
}

// recordTypes is the registry of every record type this package decodes.
// The table is the single source of truth for number↔name mapping and for
// decoder dispatch; it is built once and never mutated.
var recordTypes = []recordTypeInfo{
	{TypeA, "A", readA},
	{TypeNS, "NS", readNS},
	{TypeCNAME, "CNAME", readCNAME},
	{TypeSOA, "SOA", readSOA},
	{TypePTR, "PTR", readPTR},
	{TypeHINFO, "HINFO", readHINFO},
	{TypeMX, "MX", readMX},
	{TypeTXT, "TXT", readTXT},
	{TypeAAAA, "AAAA", readAAAA},
	{TypeLOC, "LOC", readLOC},
	{TypeSRV, "SRV", readSRV},
	{TypeNAPTR, "NAPTR", readNAPTR},
	{TypeOPT, "OPT", readOPT},
	{TypeDS, "DS", readDS},
	{TypeSSHFP, "SSHFP", readSSHFP},
	{TypeIPSECKEY, "IPSECKEY", readIPSECKEY},
	{TypeRRSIG, "RRSIG", readRRSIG},
	{TypeNSEC, "NSEC", readNSEC},
	{TypeDNSKEY, "DNSKEY", readDNSKEY},
	{TypeDHCID, "DHCID", readDHCID},
	{TypeNSEC3, "NSEC3", readNSEC3},
	{TypeNSEC3PARAM, "NSEC3PARAM", readNSEC3PARAM},
	{TypeTLSA, "TLSA", readTLSA},
	{TypeSMIMEA, "SMIMEA", readSMIMEA},
	{TypeOPENPGPKEY, "OPENPGPKEY", readOPENPGPKEY},
	{TypeEUI48, "EUI48", readEUI48},
	{TypeEUI64, "EUI64", readEUI64},
	{TypeURI, "URI", readURI},
	{TypeCAA, "CAA", readCAA},
}

var (
	typesByNumber = map[RecordType]*recordTypeInfo{}
	typesByName   = map[string]*recordTypeInfo{}
)

func init() {
	for i := range recordTypes {
		info := &recordTypes[i]
		typesByNumber[info.number] = info
		typesByName[info.name] = info
	}
}

// AllRecordTypes returns every record type in the registry, in table order.
func AllRecordTypes() []RecordType {
	out := make([]RecordType, len(recordTypes))
	for i := range recordTypes {
		out[i] = recordTypes[i].number
	}
	return out
}

// RecordTypeFromNumber converts a wire type number to a RecordType. Unknown
// numbers are preserved; they decode into Other records.
func RecordTypeFromNumber(n uint16) RecordType { return RecordType(n) }

// RecordTypeFromName resolves a record type by its canonical name,
// case-insensitively. The "TYPE123" syntax (RFC 3597) resolves unknown
// numeric types. The second return value reports whether the name resolved.
func RecordTypeFromName(name string) (RecordType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if info, ok := typesByName[upper]; ok {
		return info.number, true
	}
	if rest, ok := strings.CutPrefix(upper, "TYPE"); ok {
		if n, err := strconv.ParseUint(rest, 10, 16); err == nil {
			return RecordType(n), true
		}
	}
	return 0, false
}

// Number returns the 16-bit wire type number.
func (rt RecordType) Number() uint16 { return uint16(rt) }

// Known reports whether the registry has a decoder for this type.
func (rt RecordType) Known() bool {
	_, ok := typesByNumber[rt]
	return ok
}

// String returns the canonical uppercase name, or "TYPE123" for numbers the
// registry does not model.
func (rt RecordType) String() string {
	if info, ok := typesByNumber[rt]; ok {
		return info.name
	}
	return "TYPE" + strconv.Itoa(int(rt))
}
