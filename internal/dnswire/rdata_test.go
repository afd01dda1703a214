package dnswire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadA(t *testing.T) {
	data, err := readA(4, NewCursor([]byte{93, 184, 216, 34}))
	require.NoError(t, err)
	assert.Equal(t, "93.184.216.34", data.Value())
	assert.Equal(t, TypeA, data.Type())
}

func TestReadAEmptyBuffer(t *testing.T) {
	// An empty buffer is an I/O problem, not a length mismatch: the stated
	// length may be plausible but the bytes are simply missing.
	_, err := readA(4, NewCursor(nil))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	var lengthErr *LengthError
	assert.False(t, errors.As(err, &lengthErr))
}

func TestReadAWrongStatedLength(t *testing.T) {
	_, err := readA(5, NewCursor([]byte{1, 2, 3, 4, 5}))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeA, lengthErr.Type)
	assert.Equal(t, uint16(5), lengthErr.Stated)
	assert.Equal(t, uint16(4), lengthErr.Expected)
	assert.ErrorIs(t, err, ErrWire)
}

func TestReadAAAA(t *testing.T) {
	buf := []byte{0x26, 0x06, 0x28, 0x00, 0x02, 0x20, 0x00, 0x01,
		0x02, 0x48, 0x18, 0x93, 0x25, 0xc8, 0x19, 0x46}
	data, err := readAAAA(16, NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "2606:2800:220:1:248:1893:25c8:1946", data.Value())

	_, err = readAAAA(16, NewCursor(nil))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = readAAAA(4, NewCursor(buf))
	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, uint16(16), lengthErr.Expected)
}

func TestReadCNAMENSPtr(t *testing.T) {
	wire, err := EncodeName("target.example.com")
	require.NoError(t, err)

	cname, err := readCNAME(uint16(len(wire)), NewCursor(wire))
	require.NoError(t, err)
	assert.Equal(t, "target.example.com.", cname.Value())

	ns, err := readNS(uint16(len(wire)), NewCursor(wire))
	require.NoError(t, err)
	assert.Equal(t, "target.example.com.", ns.Value())

	ptr, err := readPTR(uint16(len(wire)), NewCursor(wire))
	require.NoError(t, err)
	assert.Equal(t, "target.example.com.", ptr.Value())
}

func TestReadSOA(t *testing.T) {
	var buf []byte
	mname, _ := EncodeName("ns1.example.com")
	rname, _ := EncodeName("hostmaster.example.com")
	buf = append(buf, mname...)
	buf = append(buf, rname...)
	buf = append(buf,
		0x78, 0x4B, 0x2A, 0x61, // serial 2018191969
		0x00, 0x00, 0x1C, 0x20, // refresh 7200
		0x00, 0x00, 0x0E, 0x10, // retry 3600
		0x00, 0x12, 0x75, 0x00, // expire 1209600
		0x00, 0x00, 0x01, 0x2C, // minimum 300
	)

	data, err := readSOA(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)

	soa := data.(*SOA)
	assert.Equal(t, "ns1.example.com", soa.Mname)
	assert.Equal(t, "hostmaster.example.com", soa.Rname)
	assert.Equal(t, uint32(2018191969), soa.Serial)
	assert.Equal(t, uint32(7200), soa.Refresh)
	assert.Equal(t, uint32(3600), soa.Retry)
	assert.Equal(t, uint32(1209600), soa.Expire)
	assert.Equal(t, uint32(300), soa.Minimum)
	assert.Equal(t,
		"ns1.example.com. hostmaster.example.com. 2018191969 7200 3600 1209600 300",
		soa.Value())
}

func TestReadHINFO(t *testing.T) {
	buf := []byte{3, 'A', 'R', 'M', 5, 'L', 'i', 'n', 'u', 'x'}
	data, err := readHINFO(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, `"ARM" "Linux"`, data.Value())
}

func TestReadMX(t *testing.T) {
	name, _ := EncodeName("mail.example.com")
	buf := append([]byte{0x00, 0x0A}, name...)

	data, err := readMX(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "10 mail.example.com.", data.Value())

	_, err = readMX(2, NewCursor([]byte{0x00}))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadTXT(t *testing.T) {
	buf := []byte{3, 'f', 'o', 'o', 3, 'b', 'a', 'r'}
	data, err := readTXT(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)

	txt := data.(*TXT)
	assert.Equal(t, []string{"foo", "bar"}, txt.Messages)
	assert.Equal(t, `"foo" "bar"`, txt.Value())
}

func TestReadTXTOverrunningCharString(t *testing.T) {
	// The character-string claims 5 bytes but the stated RDATA length is 3.
	buf := []byte{5, 'h', 'e', 'l', 'l', 'o'}
	_, err := readTXT(3, NewCursor(buf))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeTXT, lengthErr.Type)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadTXTEmpty(t *testing.T) {
	_, err := readTXT(0, NewCursor(nil))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadSRV(t *testing.T) {
	name, _ := EncodeName("sip.example.com")
	buf := append([]byte{0x00, 0x05, 0x00, 0x0A, 0x13, 0xC4}, name...)

	data, err := readSRV(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "5 10 5060 sip.example.com.", data.Value())
}

func TestReadNAPTR(t *testing.T) {
	replacement, _ := EncodeName("sip.example.com")
	var buf []byte
	buf = append(buf, 0x00, 0x64, 0x00, 0x0A) // order 100, preference 10
	buf = append(buf, 1, 'S')
	buf = append(buf, 7, 'S', 'I', 'P', '+', 'D', '2', 'U')
	buf = append(buf, 0)
	buf = append(buf, replacement...)

	data, err := readNAPTR(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, `100 10 "S" "SIP+D2U" "" sip.example.com.`, data.Value())
}

func TestReadURI(t *testing.T) {
	target := []byte("https://example.com/")
	buf := append([]byte{0x00, 0x0A, 0x00, 0x01}, target...)

	data, err := readURI(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, `10 1 "https://example.com/"`, data.Value())
}

func TestReadURITooShort(t *testing.T) {
	// Stated length smaller than the two fixed fields: checked subtraction
	// must report a length error, never wrap around.
	_, err := readURI(3, NewCursor([]byte{0x00, 0x0A, 0x00, 0x01}))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeURI, lengthErr.Type)
	assert.Equal(t, uint16(3), lengthErr.Stated)
	assert.Equal(t, uint16(4), lengthErr.Expected)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadCAA(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x80)
	buf = append(buf, 5, 'i', 's', 's', 'u', 'e')
	buf = append(buf, []byte("ca.example.net")...)

	data, err := readCAA(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)

	caa := data.(*CAA)
	assert.True(t, caa.Critical())
	assert.Equal(t, `128 issue "ca.example.net"`, caa.Value())
}

func TestReadCAATagOverrun(t *testing.T) {
	buf := []byte{0x00, 5, 'i', 's', 's', 'u', 'e'}
	_, err := readCAA(4, NewCursor(buf))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadEUI(t *testing.T) {
	data, err := readEUI48(6, NewCursor([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}))
	require.NoError(t, err)
	assert.Equal(t, "00-11-22-33-44-55", data.Value())

	data, err = readEUI64(8, NewCursor([]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}))
	require.NoError(t, err)
	assert.Equal(t, "00-11-22-33-44-55-66-77", data.Value())

	_, err = readEUI48(6, NewCursor(nil))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)

	_, err = readEUI48(7, NewCursor([]byte{0, 1, 2, 3, 4, 5, 6}))
	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, uint16(6), lengthErr.Expected)
}

func TestReadLOC(t *testing.T) {
	// Midpoint coordinates and the altitude zero offset give the origin.
	buf := []byte{
		0x00, 0x12, 0x16, 0x13,
		0x80, 0x00, 0x00, 0x00,
		0x80, 0x00, 0x00, 0x00,
		0x00, 0x98, 0x96, 0x80,
	}
	data, err := readLOC(16, NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "0 0 0.000 N 0 0 0.000 E 0.00m", data.Value())
}

func TestReadLOCWrongLength(t *testing.T) {
	// The stated length is checked before any field is read.
	_, err := readLOC(12, NewCursor(nil))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeLOC, lengthErr.Type)
	assert.Equal(t, uint16(16), lengthErr.Expected)
}

func TestReadDS(t *testing.T) {
	buf := []byte{0xD4, 0x31, 0x08, 0x02, 0xAB, 0xCD, 0xEF}
	data, err := readDS(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "54321 8 2 ABCDEF", data.Value())

	_, err = readDS(3, NewCursor(buf))
	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadDNSKEY(t *testing.T) {
	buf := []byte{0x01, 0x01, 0x03, 0x08, 0x01, 0x02, 0x03}
	data, err := readDNSKEY(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)

	key := data.(*DNSKEY)
	assert.Equal(t, uint16(257), key.Flags)
	assert.Equal(t, uint8(3), key.Protocol)
	assert.Equal(t, uint8(8), key.Algorithm)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, key.PublicKey)
}

func TestReadRRSIG(t *testing.T) {
	signer, _ := EncodeName("example.com")
	var buf []byte
	buf = append(buf,
		0x00, 0x01, // type covered: A
		0x08,                   // algorithm
		0x02,                   // labels
		0x00, 0x00, 0x0E, 0x10, // original TTL 3600
		0x5F, 0x5E, 0x10, 0x00, // expiration
		0x5F, 0x5C, 0xBE, 0x80, // inception
		0xD4, 0x31, // key tag 54321
	)
	buf = append(buf, signer...)
	buf = append(buf, 0xDE, 0xAD, 0xBE, 0xEF)

	data, err := readRRSIG(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)

	sig := data.(*RRSIG)
	assert.Equal(t, TypeA, sig.TypeCovered)
	assert.Equal(t, uint8(8), sig.Algorithm)
	assert.Equal(t, uint8(2), sig.Labels)
	assert.Equal(t, uint32(3600), sig.OriginalTTL)
	assert.Equal(t, uint16(54321), sig.KeyTag)
	assert.Equal(t, "example.com", sig.SignersName)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, sig.Signature)
}

func TestReadRRSIGSignatureUnderflow(t *testing.T) {
	signer, _ := EncodeName("example.com")
	buf := make([]byte, 18)
	buf = append(buf, signer...)

	// Stated length shorter than the fixed fields plus the signer name.
	_, err := readRRSIG(10, NewCursor(buf))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeRRSIG, lengthErr.Type)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadNSEC(t *testing.T) {
	next, _ := EncodeName("b.example.com")
	buf := append(next, 0x00, 0x02, 0x40, 0x01)

	data, err := readNSEC(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "b.example.com. A MX", data.Value())
}

func TestReadNSEC3(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x01, 0x00, 0x00, 0x0A) // alg 1, flags 0, iterations 10
	buf = append(buf, 2, 0xAB, 0xCD)          // salt
	buf = append(buf, 3, 0x01, 0x02, 0x03)    // next hashed owner
	buf = append(buf, 0x00, 0x01, 0x40)       // bitmap: A

	data, err := readNSEC3(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "1 0 10 ABCD 010203 A", data.Value())
}

func TestReadNSEC3PARAM(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00, 0x0A, 2, 0xAB, 0xCD}
	data, err := readNSEC3PARAM(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "1 0 10 ABCD", data.Value())

	// Empty salt renders as "-".
	buf = []byte{0x01, 0x00, 0x00, 0x0A, 0}
	data, err = readNSEC3PARAM(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "1 0 10 -", data.Value())
}

func TestReadNSEC3PARAMLengthMismatch(t *testing.T) {
	// 4-byte salt makes the real length 9; the record states 7. The error
	// must carry both numbers.
	buf := []byte{0x01, 0x00, 0x00, 0x0A, 4, 0x01, 0x02, 0x03, 0x04}
	_, err := readNSEC3PARAM(7, NewCursor(buf))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeNSEC3PARAM, lengthErr.Type)
	assert.Equal(t, uint16(7), lengthErr.Stated)
	assert.Equal(t, uint16(9), lengthErr.Expected)
	assert.False(t, lengthErr.AtLeast)
}

func TestReadTLSA(t *testing.T) {
	buf := []byte{3, 1, 1, 0xAA, 0xBB, 0xCC}
	data, err := readTLSA(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "3 1 1 aabbcc", data.Value())
}

func TestReadSMIMEATooShort(t *testing.T) {
	// Fewer bytes than the three fixed fields plus one byte of certificate
	// data: rejected on the stated length alone, before reading anything.
	_, err := readSMIMEA(2, NewCursor([]byte{3, 1}))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeSMIMEA, lengthErr.Type)
	assert.Equal(t, uint16(2), lengthErr.Stated)
	assert.Equal(t, uint16(4), lengthErr.Expected)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadSMIMEA(t *testing.T) {
	buf := []byte{3, 0, 1, 0x01, 0x02}
	data, err := readSMIMEA(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "3 0 1 0102", data.Value())
}

func TestReadSSHFP(t *testing.T) {
	buf := []byte{4, 2, 0x12, 0x34}
	data, err := readSSHFP(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)
	assert.Equal(t, "4 2 1234", data.Value())

	_, err = readSSHFP(1, NewCursor(buf))
	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadDHCID(t *testing.T) {
	buf := []byte{0x00, 0x01, 0x12, 0x34, 0x56, 0x78}
	data, err := readDHCID(6, NewCursor(buf))
	require.NoError(t, err)

	dhcid := data.(*DHCID)
	assert.Equal(t, uint8(0), dhcid.IdentifierTypeCode)
	assert.Equal(t, uint8(1), dhcid.DigestTypeCode)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, dhcid.Digest)
	assert.Equal(t, "AAESNFZ4", dhcid.Value())
}

func TestReadDHCIDEmptyBuffer(t *testing.T) {
	_, err := readDHCID(6, NewCursor(nil))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReadIPSECKEY(t *testing.T) {
	t.Run("no gateway", func(t *testing.T) {
		buf := []byte{10, 0, 2, 0x01, 0x02}
		data, err := readIPSECKEY(uint16(len(buf)), NewCursor(buf))
		require.NoError(t, err)
		assert.Equal(t, "10 0 2 . AQI=", data.Value())
	})

	t.Run("ipv4 gateway", func(t *testing.T) {
		buf := []byte{10, 1, 2, 192, 0, 2, 1, 0x01, 0x02}
		data, err := readIPSECKEY(uint16(len(buf)), NewCursor(buf))
		require.NoError(t, err)
		assert.Equal(t, "10 1 2 192.0.2.1 AQI=", data.Value())
	})

	t.Run("ipv6 gateway", func(t *testing.T) {
		buf := []byte{10, 2, 2}
		buf = append(buf, 0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1)
		buf = append(buf, 0x01, 0x02)
		data, err := readIPSECKEY(uint16(len(buf)), NewCursor(buf))
		require.NoError(t, err)
		assert.Equal(t, "10 2 2 2001:db8::1 AQI=", data.Value())
	})

	t.Run("domain gateway", func(t *testing.T) {
		gateway, _ := EncodeName("gateway.example.com")
		buf := []byte{10, 3, 2}
		buf = append(buf, gateway...)
		buf = append(buf, 0x01, 0x02)
		data, err := readIPSECKEY(uint16(len(buf)), NewCursor(buf))
		require.NoError(t, err)

		key := data.(*IPSECKEY)
		assert.Equal(t, "gateway.example.com", key.GatewayName)
		assert.Equal(t, "10 3 2 gateway.example.com. AQI=", data.Value())
	})

	t.Run("key underflow", func(t *testing.T) {
		buf := []byte{10, 1, 2, 192, 0, 2, 1}
		_, err := readIPSECKEY(5, NewCursor(buf))
		var lengthErr *LengthError
		require.ErrorAs(t, err, &lengthErr)
		assert.True(t, lengthErr.AtLeast)
	})
}

func TestReadOPENPGPKEY(t *testing.T) {
	data, err := readOPENPGPKEY(3, NewCursor([]byte{0x01, 0x02, 0x03}))
	require.NoError(t, err)
	assert.Equal(t, "AQID", data.Value())

	_, err = readOPENPGPKEY(0, NewCursor(nil))
	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, uint16(1), lengthErr.Expected)
	assert.True(t, lengthErr.AtLeast)
}

func TestReadOPT(t *testing.T) {
	buf := []byte{0x00, 0x0A, 0x00, 0x04, 0xDE, 0xAD, 0xBE, 0xEF}
	data, err := readOPT(uint16(len(buf)), NewCursor(buf))
	require.NoError(t, err)

	opt := data.(*OPT)
	require.Len(t, opt.Options, 1)
	assert.Equal(t, uint16(10), opt.Options[0].Code)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, opt.Options[0].Data)

	data, err = readOPT(0, NewCursor(nil))
	require.NoError(t, err)
	assert.Empty(t, data.(*OPT).Options)
}

func TestReadOPTOptionOverrun(t *testing.T) {
	// Option length runs past the stated RDATA length.
	buf := []byte{0x00, 0x0A, 0x00, 0x08, 0xDE, 0xAD}
	_, err := readOPT(6, NewCursor(buf))

	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, TypeOPT, lengthErr.Type)
}

func TestSubtractLength(t *testing.T) {
	n, err := subtractLength(TypeDS, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = subtractLength(TypeDS, 4, 4)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = subtractLength(TypeDS, 3, 4)
	var lengthErr *LengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, uint16(3), lengthErr.Stated)
	assert.Equal(t, uint16(4), lengthErr.Expected)
	assert.True(t, lengthErr.AtLeast)
	assert.ErrorIs(t, err, ErrWire)
}
