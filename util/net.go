package util

import (
	"fmt"
	"net/netip"
	"strings"
)

// IsIPv6 reports whether addr is the textual form of an IPv6 address. Host
// names and malformed text are treated as IPv4-family for SDP purposes.
func IsIPv6(addr string) bool {
	if !strings.Contains(addr, ":") {
		return false
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	return ip.Is6() && !ip.Is4In6()
}

// AddrString renders an address the way it goes into o= and c= lines.
// IPv4-mapped IPv6 addresses are unmapped first.
func AddrString(a netip.Addr) string {
	return a.Unmap().String()
}

// ParseAddr converts host text from an SDP line back into an address.
func ParseAddr(s string) (netip.Addr, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("invalid address '%s': %w", s, err)
	}
	return a.Unmap(), nil
}
