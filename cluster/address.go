package cluster

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is the canonical address of a cluster node, rendered as
// protocol://system@host:port.
type Address struct {
	Protocol string
	System   string
	Host     string
	Port     int
}

func (a Address) String() string {
	return fmt.Sprintf("%s://%s@%s:%d", a.Protocol, a.System, a.Host, a.Port)
}

// HostPort returns the transport part of the address.
func (a Address) HostPort() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// ParseAddress parses the fully qualified protocol://system@host:port form.
func ParseAddress(s string) (Address, error) {
	protocol, rest, ok := strings.Cut(s, "://")
	if !ok || protocol == "" {
		return Address{}, fmt.Errorf("%w: missing protocol in %q", ErrInvalidAddress, s)
	}

	addr, err := parseAuthority(rest)
	if err != nil {
		return Address{}, err
	}

	addr.Protocol = protocol

	return addr, nil
}

func parseAuthority(s string) (Address, error) {
	system, hostport, ok := strings.Cut(s, "@")
	if !ok || system == "" {
		return Address{}, fmt.Errorf("%w: missing system name in %q", ErrInvalidAddress, s)
	}

	// The host may contain colons (IPv6), the port starts after the last one.
	idx := strings.LastIndex(hostport, ":")
	if idx <= 0 {
		return Address{}, fmt.Errorf("%w: missing port in %q", ErrInvalidAddress, s)
	}

	host, portStr := hostport[:idx], hostport[idx+1:]

	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return Address{}, fmt.Errorf("%w: invalid port %q", ErrInvalidAddress, portStr)
	}

	return Address{System: system, Host: host, Port: port}, nil
}

// Matches reports whether the query string refers to this address. Both the
// fully qualified protocol://system@host:port form and the abbreviated
// system@host:port form are accepted. System name and protocol are compared
// exactly, the host case-insensitively. Malformed queries match nothing.
func (a Address) Matches(query string) bool {
	authority := query

	if protocol, rest, ok := strings.Cut(query, "://"); ok {
		if protocol != a.Protocol {
			return false
		}

		authority = rest
	}

	parsed, err := parseAuthority(authority)
	if err != nil {
		return false
	}

	return parsed.System == a.System &&
		strings.EqualFold(parsed.Host, a.Host) &&
		parsed.Port == a.Port
}
