// pkg/hosts/hosts.go
package hosts

import "strings"

// Normalize strips any :port suffix and lowercases a raw Host header value.
// Always returns a string; empty input normalizes to "".
func Normalize(raw string) string {
	h := strings.TrimSpace(raw)
	if i := strings.Index(h, ":"); i >= 0 {
		h = h[:i]
	}
	return strings.ToLower(h)
}

// SubdomainLabel returns the leftmost label of host when host is a proper
// subdomain of the platform suffix (e.g. "acme.clubgate.app" with suffix
// ".clubgate.app" yields "acme"). The label is a candidate club slug, not a
// verified one.
func SubdomainLabel(host, suffix string) (string, bool) {
	if suffix == "" || !strings.HasSuffix(host, suffix) {
		return "", false
	}
	label := strings.TrimSuffix(host, suffix)
	if label == "" || strings.Contains(label, ".") {
		return "", false
	}
	return label, true
}
