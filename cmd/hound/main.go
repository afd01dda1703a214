// Command hound is a command-line DNS client.
//
// Usage:
//
//	hound [options] [@nameserver] domain [type ...]
//
// Arguments starting with '@' select a nameserver, arguments that match a
// record type name select a type, and anything else is a domain to look up.
// An IP address argument becomes the corresponding reverse lookup.
//
// Exit codes: 0 success, 1 network or protocol error, 2 no results in
// --short mode, 3 invalid arguments.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/jroosing/hound/internal/client"
	"github.com/jroosing/hound/internal/config"
	"github.com/jroosing/hound/internal/dnswire"
	"github.com/jroosing/hound/internal/hints"
	"github.com/jroosing/hound/internal/logging"
	"github.com/jroosing/hound/internal/output"
)

const (
	exitOK             = 0
	exitNetworkError   = 1
	exitNoShortResults = 2
	exitInvalidOptions = 3
)

// listFlag collects repeated flag values, splitting comma-separated lists.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("hound", flag.ContinueOnError)

	var domains, types, nameservers listFlag
	fs.Var(&domains, "q", "Domain to look up (repeatable, same as positional)")
	fs.Var(&types, "t", "Record type to query (repeatable)")
	fs.Var(&nameservers, "n", "Nameserver to query (repeatable)")

	var (
		useUDP   = fs.Bool("U", false, "Use plain UDP only, no TCP retry")
		useTCP   = fs.Bool("T", false, "Use TCP")
		useTLS   = fs.Bool("S", false, "Use DNS-over-TLS")
		useHTTPS = fs.Bool("H", false, "Use DNS-over-HTTPS (nameserver is a URL)")

		port    = fs.Int("port", 0, "Nameserver port (0 = transport default)")
		timeout = fs.Duration("timeout", 0, "Timeout per exchange")

		edns    = fs.Bool("edns", false, "Add an EDNS record to queries")
		bufsize = fs.Int("bufsize", 0, "EDNS UDP payload size to advertise")

		tlsServerName = fs.String("tls-server-name", "", "Override the TLS certificate name")

		short    = fs.Bool("short", false, "Print record values only")
		jsonOut  = fs.Bool("json", false, "Print results as JSON")
		showTime = fs.Bool("time", false, "Report how long the run took")

		logLevel = fs.String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
		logJSON  = fs.Bool("log-json", false, "Log as JSON")
	)

	if err := fs.Parse(args); err != nil {
		return exitInvalidOptions
	}

	cfg := config.Config{
		Domains:        domains,
		Types:          types,
		Nameservers:    nameservers,
		Port:           *port,
		Timeout:        *timeout,
		EDNS:           *edns || *bufsize > 0,
		UDPPayloadSize: *bufsize,
		TLSServerName:  *tlsServerName,
		MeasureTime:    *showTime,
		Logging: config.LoggingConfig{
			Level:      *logLevel,
			Structured: *logJSON,
		},
	}

	switch {
	case *jsonOut:
		cfg.Format = config.OutputJSON
	case *short:
		cfg.Format = config.OutputShort
	}

	var err error
	cfg.Transport, err = pickTransport(*useUDP, *useTCP, *useTLS, *useHTTPS)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidOptions
	}

	// Sort the positional arguments into nameservers, types and domains.
	for _, arg := range fs.Args() {
		switch {
		case strings.HasPrefix(arg, "@"):
			cfg.Nameservers = append(cfg.Nameservers, strings.TrimPrefix(arg, "@"))
		case looksLikeType(arg):
			cfg.Types = append(cfg.Types, arg)
		default:
			cfg.Domains = append(cfg.Domains, arg)
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInvalidOptions
	}

	logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
	})

	localHints := hints.Load()
	for _, domain := range cfg.Domains {
		localHints.Warn(domain)
	}

	results, err := runLookups(&cfg)
	renderer := &output.Renderer{
		Format:       cfg.Format,
		ShowDuration: cfg.MeasureTime,
		W:            os.Stdout,
	}
	if err != nil {
		if cfg.Format == config.OutputJSON {
			output.RenderError(os.Stdout, err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return exitNetworkError
	}

	lines, err := renderer.Render(results.results, results.elapsed)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitNetworkError
	}
	if cfg.Format == config.OutputShort && lines == 0 {
		fmt.Fprintln(os.Stderr, "No results")
		return exitNoShortResults
	}
	return exitOK
}

// pickTransport maps the mutually exclusive transport flags onto a kind.
func pickTransport(udp, tcp, tlsFlag, https bool) (config.TransportKind, error) {
	set := 0
	kind := config.TransportAuto
	if udp {
		set++
		kind = config.TransportUDP
	}
	if tcp {
		set++
		kind = config.TransportTCP
	}
	if tlsFlag {
		set++
		kind = config.TransportTLS
	}
	if https {
		set++
		kind = config.TransportHTTPS
	}
	if set > 1 {
		return kind, fmt.Errorf("only one of -U, -T, -S, -H may be given")
	}
	return kind, nil
}

// looksLikeType reports whether a positional argument names a record type.
// Dotted arguments are always domains, so a host actually named "mx" can
// still be queried as "mx.".
func looksLikeType(arg string) bool {
	if strings.Contains(arg, ".") {
		return false
	}
	_, ok := dnswire.RecordTypeFromName(arg)
	return ok || strings.EqualFold(arg, "ANY")
}

type runOutcome struct {
	results []output.Result
	elapsed time.Duration
}

// runLookups issues every (domain, type) pair sequentially. Nameservers are
// tried in order; the first one that answers a query wins.
func runLookups(cfg *config.Config) (runOutcome, error) {
	types, err := client.ResolveTypes(cfg.Types)
	if err != nil {
		return runOutcome{}, err
	}

	clients := make([]*client.Client, 0, len(cfg.Nameservers))
	for _, ns := range cfg.Nameservers {
		clients = append(clients, client.New(cfg, ns))
	}

	var payloadSize uint16
	if cfg.EDNS {
		payloadSize = uint16(cfg.UDPPayloadSize)
	}

	var requests []client.Request
	for _, domain := range cfg.Domains {
		if ip := net.ParseIP(domain); ip != nil {
			requests = append(requests, client.Request{
				Name:           client.ReverseName(ip),
				Type:           dnswire.TypePTR,
				UDPPayloadSize: payloadSize,
			})
			continue
		}
		for _, rt := range types {
			requests = append(requests, client.Request{
				Name:           domain,
				Type:           rt,
				UDPPayloadSize: payloadSize,
			})
		}
	}

	start := time.Now()
	outcome := runOutcome{results: make([]output.Result, 0, len(requests))}
	for _, req := range requests {
		resp, err := lookupWithFailover(clients, req)
		if err != nil {
			return runOutcome{}, err
		}
		outcome.results = append(outcome.results, output.Result{Request: req, Response: resp})
	}
	outcome.elapsed = time.Since(start)
	return outcome, nil
}

// lookupWithFailover tries each nameserver in order until one answers.
func lookupWithFailover(clients []*client.Client, req client.Request) (*client.Response, error) {
	var lastErr error
	for _, c := range clients {
		resp, err := c.Lookup(context.Background(), req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
