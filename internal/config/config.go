// Package config provides the CLI-facing configuration for hound.
//
// The Config struct is populated from command-line flags in cmd/hound and
// normalized by Validate before any query is built.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jroosing/hound/internal/dnswire"
	"github.com/jroosing/hound/internal/helpers"
)

// DefaultTimeout bounds a single exchange when no --timeout flag is given.
const DefaultTimeout = 5 * time.Second

// Config is the root configuration structure.
type Config struct {
	// Domains to look up. An entry that parses as an IP address is turned
	// into the corresponding reverse-lookup name by the client.
	Domains []string

	// Types holds record type names ("A", "MX", "TYPE255"). Empty means A.
	Types []string

	// Nameservers to query. Empty means the system resolvers from
	// /etc/resolv.conf. For TransportHTTPS these are URLs.
	Nameservers []string

	Transport TransportKind

	// Port overrides the transport's default port. 0 keeps the default.
	Port int

	// EDNS adds an OPT record to queries advertising UDPPayloadSize.
	EDNS           bool
	UDPPayloadSize int

	// TLSServerName overrides certificate verification for TransportTLS.
	TLSServerName string

	Timeout time.Duration

	// MeasureTime reports the elapsed wall-clock time of the whole run.
	MeasureTime bool

	Format OutputFormat

	Logging LoggingConfig
}

// Validate validates and normalizes the configuration.
func (cfg *Config) Validate() error {
	if len(cfg.Domains) == 0 {
		return errors.New("no domains given")
	}

	// Default record type
	if len(cfg.Types) == 0 {
		cfg.Types = []string{"A"}
	}
	for _, name := range cfg.Types {
		if strings.EqualFold(strings.TrimSpace(name), "ANY") {
			continue // expanded to concrete types by the client
		}
		if _, ok := dnswire.RecordTypeFromName(name); !ok {
			return fmt.Errorf("unknown record type %q", name)
		}
	}

	// Validate port
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.New("port must be 1..65535")
	}

	// Default nameservers
	if len(cfg.Nameservers) == 0 {
		if cfg.Transport == TransportHTTPS {
			return errors.New("DNS-over-HTTPS requires a nameserver URL")
		}
		cfg.Nameservers = SystemNameservers()
	}
	if cfg.Transport == TransportHTTPS {
		for _, ns := range cfg.Nameservers {
			if !strings.Contains(ns, "://") {
				return fmt.Errorf("nameserver %q is not a URL", ns)
			}
		}
	}

	// Normalize timeout
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	// Normalize the EDNS payload size
	if cfg.UDPPayloadSize == 0 {
		cfg.UDPPayloadSize = int(dnswire.EDNSDefaultUDPPayloadSize)
	}
	cfg.UDPPayloadSize = helpers.ClampInt(cfg.UDPPayloadSize,
		int(dnswire.DefaultUDPPayloadSize), int(dnswire.EDNSMaxUDPPayloadSize))

	// Normalize logging
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "WARN"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.StructuredFormat == "" {
		cfg.Logging.StructuredFormat = "json"
	}

	return nil
}

// DefaultPort returns the well-known port for the transport. HTTPS carries
// its port inside the URL, so it has no default here.
func DefaultPort(kind TransportKind) int {
	switch kind {
	case TransportTLS:
		return 853
	case TransportHTTPS:
		return 0
	default:
		return 53
	}
}

// ServerAddr joins a nameserver with the effective port. Nameservers that
// already carry a port are kept as-is; IPv6 addresses are bracketed.
func (cfg *Config) ServerAddr(nameserver string) string {
	if cfg.Transport == TransportHTTPS {
		return nameserver
	}
	if _, _, err := net.SplitHostPort(nameserver); err == nil {
		return nameserver
	}
	port := cfg.Port
	if port == 0 {
		port = DefaultPort(cfg.Transport)
	}
	return net.JoinHostPort(nameserver, fmt.Sprintf("%d", port))
}
