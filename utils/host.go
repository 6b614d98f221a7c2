// utils/host.go
package utils

import "strings"

// NormalizeHost strips the port and lowercases a request Host header.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.TrimSuffix(host, ".")
}

// SubdomainOf returns the subdomain label when host is a direct child of
// baseDomain, e.g. ("mysalon.salonsphere.nl", "salonsphere.nl") => "mysalon".
func SubdomainOf(host, baseDomain string) (string, bool) {
	host = NormalizeHost(host)
	baseDomain = NormalizeHost(baseDomain)
	if baseDomain == "" || !strings.HasSuffix(host, "."+baseDomain) {
		return "", false
	}
	sub := strings.TrimSuffix(host, "."+baseDomain)
	if sub == "" || strings.Contains(sub, ".") {
		return "", false
	}
	return sub, true
}
