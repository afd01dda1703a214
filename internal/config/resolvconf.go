package config

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const resolvConfPath = "/etc/resolv.conf"

// fallbackNameserver is used when no system resolver can be discovered.
const fallbackNameserver = "8.8.8.8"

// SystemNameservers returns the resolvers configured in /etc/resolv.conf,
// falling back to a public resolver when the file is missing or lists none.
func SystemNameservers() []string {
	f, err := os.Open(resolvConfPath)
	if err != nil {
		return []string{fallbackNameserver}
	}
	defer f.Close()

	servers := parseResolvConf(f)
	if len(servers) == 0 {
		return []string{fallbackNameserver}
	}
	return servers
}

// parseResolvConf extracts nameserver entries from resolv.conf syntax.
// Comments start with '#' or ';'.
func parseResolvConf(r io.Reader) []string {
	var servers []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "nameserver" {
			servers = append(servers, fields[1])
		}
	}
	return servers
}
