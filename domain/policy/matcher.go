// Package policy implements the host-matching rules of the egress layer.
package policy

import (
	"net"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// loopbackHosts are always allowed regardless of whitelist contents.
var loopbackHosts = map[string]bool{
	"localhost": true,
	"127.0.0.1": true,
	"::1":       true,
}

// Matcher holds the whitelist and decides allow/deny for a destination
// host. Decisions are pure: no network access, no state beyond the
// whitelist. Mutations take effect on the next decision; a mutation
// concurrent with a decision may be visible mid-decision, which is
// acceptable for policy updates.
type Matcher struct {
	mu      sync.RWMutex
	entries map[string]struct{}
}

// NewMatcher creates a Matcher seeded with the given whitelist entries.
// Entries may be bare hostnames or IPs ("api.example.com"), domain
// suffixes ("example.com", matching true subdomains), glob patterns
// ("*.example.com") or CIDR ranges ("10.0.0.0/8").
func NewMatcher(entries ...string) *Matcher {
	m := &Matcher{entries: make(map[string]struct{})}
	for _, e := range entries {
		m.Add(e)
	}
	return m
}

// Add inserts a whitelist entry. Entries are normalized to lower case and
// deduplicated; empty entries are ignored.
func (m *Matcher) Add(entry string) {
	norm := normalizeEntry(entry)
	if norm == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[norm] = struct{}{}
}

// Remove deletes a whitelist entry. Removing an absent entry is a no-op.
func (m *Matcher) Remove(entry string) {
	norm := normalizeEntry(entry)
	if norm == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, norm)
}

// Entries returns the current whitelist, sorted.
func (m *Matcher) Entries() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.entries))
	for e := range m.entries {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// Allowed reports whether host is exempt from denial. host may carry a
// trailing :port, which is stripped before comparison; matching is
// case-insensitive. An empty host is denied (fail closed). The fixed
// loopback set {localhost, 127.0.0.1, ::1} is always allowed.
func (m *Matcher) Allowed(host string) bool {
	host = strings.ToLower(splitHost(host))
	if host == "" {
		return false
	}

	m.mu.RLock()
	for entry := range m.entries {
		if matchEntry(host, entry) {
			m.mu.RUnlock()
			return true
		}
	}
	m.mu.RUnlock()

	return loopbackHosts[host]
}

// matchEntry checks one host against one whitelist entry: exact match,
// true-subdomain suffix ("api.example.com" matches "example.com",
// "notexample.com" does not), glob pattern, or CIDR containment for IP
// hosts.
func matchEntry(host, entry string) bool {
	if host == entry {
		return true
	}
	if strings.HasSuffix(host, "."+entry) {
		return true
	}
	if strings.ContainsAny(entry, "*?[") {
		if matched, err := doublestar.Match(entry, host); err == nil && matched {
			return true
		}
	}
	if strings.Contains(entry, "/") {
		if ip := net.ParseIP(host); ip != nil {
			if _, cidr, err := net.ParseCIDR(entry); err == nil && cidr.Contains(ip) {
				return true
			}
		}
	}
	return false
}

// splitHost strips a trailing :port from an address. IPv6 literals are
// recognized before generic port stripping so their internal colons do not
// truncate the host.
func splitHost(address string) string {
	if address == "" || !strings.Contains(address, ":") {
		return address
	}
	if loopbackHosts[strings.ToLower(address)] {
		return address
	}
	if h, _, err := net.SplitHostPort(address); err == nil {
		return h
	}
	// Unbracketed IPv6 literal without a port.
	if strings.Count(address, ":") > 1 {
		return address
	}
	return address[:strings.Index(address, ":")]
}

func normalizeEntry(entry string) string {
	return strings.ToLower(strings.TrimSpace(entry))
}
