package config

// TransportKind selects how queries reach the nameserver.
type TransportKind int

const (
	// TransportAuto sends over UDP and retries over TCP when the response
	// comes back truncated.
	TransportAuto TransportKind = iota
	// TransportUDP sends over UDP only, even if the response is truncated.
	TransportUDP
	// TransportTCP sends over TCP only.
	TransportTCP
	// TransportTLS sends over DNS-over-TLS (RFC 7858).
	TransportTLS
	// TransportHTTPS sends over DNS-over-HTTPS (RFC 8484).
	TransportHTTPS
)

// String returns the transport name as shown in logs and errors.
func (k TransportKind) String() string {
	switch k {
	case TransportAuto:
		return "auto"
	case TransportUDP:
		return "udp"
	case TransportTCP:
		return "tcp"
	case TransportTLS:
		return "tls"
	case TransportHTTPS:
		return "https"
	default:
		return "unknown"
	}
}

// OutputFormat selects how lookup results are rendered.
type OutputFormat int

const (
	// OutputText prints one annotated line per record.
	OutputText OutputFormat = iota
	// OutputShort prints record values only, one per line.
	OutputShort
	// OutputJSON prints a single JSON document.
	OutputJSON
)

// LoggingConfig contains logging settings, mapped onto the logging package
// by the CLI.
type LoggingConfig struct {
	Level            string
	Structured       bool
	StructuredFormat string
}
