package client

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/idna"

	"github.com/jroosing/hound/internal/dnswire"
)

// PrepareName converts a user-supplied domain into the ASCII form that goes
// on the wire. Internationalized names are punycoded; plain ASCII names pass
// through unchanged so special labels like "_dmarc" survive.
func PrepareName(name string) (string, error) {
	if isASCII(name) {
		return name, nil
	}
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(name, "."))
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(name, ".") {
		ascii += "."
	}
	return ascii, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// ReverseName builds the reverse-lookup name for an IP address:
// in-addr.arpa for IPv4, nibble-reversed ip6.arpa for IPv6.
func ReverseName(ip net.IP) string {
	if v4 := ip.To4(); v4 != nil {
		return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa", v4[3], v4[2], v4[1], v4[0])
	}

	const hexDigits = "0123456789abcdef"
	v6 := ip.To16()
	var b strings.Builder
	b.Grow(len(v6)*4 + len("ip6.arpa"))
	for i := len(v6) - 1; i >= 0; i-- {
		b.WriteByte(hexDigits[v6[i]&0x0F])
		b.WriteByte('.')
		b.WriteByte(hexDigits[v6[i]>>4])
		b.WriteByte('.')
	}
	b.WriteString("ip6.arpa")
	return b.String()
}

// anyTypes is what an ANY query expands to. Modern resolvers refuse or
// minimize ANY (RFC 8482), so the expansion happens client-side as separate
// queries per type.
var anyTypes = []dnswire.RecordType{
	dnswire.TypeA,
	dnswire.TypeAAAA,
	dnswire.TypeCNAME,
	dnswire.TypeMX,
	dnswire.TypeNS,
	dnswire.TypeSOA,
	dnswire.TypeSRV,
	dnswire.TypeTXT,
}

// ResolveTypes maps configured type names to record types, expanding "ANY".
func ResolveTypes(names []string) ([]dnswire.RecordType, error) {
	types := make([]dnswire.RecordType, 0, len(names))
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "ANY") {
			types = append(types, anyTypes...)
			continue
		}
		rt, ok := dnswire.RecordTypeFromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown record type %q", name)
		}
		types = append(types, rt)
	}
	return types, nil
}
