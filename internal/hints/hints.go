// Package hints cross-checks queried domains against the local hosts file.
// A name pinned in /etc/hosts resolves locally regardless of what DNS says,
// so a lookup for one gets a warning that the answers may not be what the
// system actually uses.
package hints

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jroosing/hound/internal/dnswire"
)

const hostsPath = "/etc/hosts"

// Hints maps normalized host names to the addresses the hosts file pins
// them to.
type Hints struct {
	entries map[string][]string
}

// Load reads the system hosts file. A missing or unreadable file yields an
// empty set, never an error; hints are advisory.
func Load() *Hints {
	f, err := os.Open(hostsPath)
	if err != nil {
		return &Hints{entries: map[string][]string{}}
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads hosts-file syntax: an address followed by one or more names,
// with '#' starting a comment.
func Parse(r io.Reader) *Hints {
	entries := map[string][]string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		addr := fields[0]
		for _, name := range fields[1:] {
			key := dnswire.NormalizeName(name)
			entries[key] = append(entries[key], addr)
		}
	}
	return &Hints{entries: entries}
}

// Addresses returns the pinned addresses for a name, or nil.
func (h *Hints) Addresses(name string) []string {
	return h.entries[dnswire.NormalizeName(name)]
}

// Warn logs when the queried domain is pinned in the hosts file.
func (h *Hints) Warn(domain string) {
	if addrs := h.Addresses(domain); len(addrs) > 0 {
		slog.Warn("domain is listed in the hosts file, DNS answers may not apply",
			"domain", domain, "addresses", strings.Join(addrs, ", "))
	}
}
