package app

import (
	"net/url"
	"strings"
)

// matchOrigin compares a request origin against the configured allow list.
// Entries may be full origins ("https://example.org") or bare hosts with an
// optional wildcard subdomain ("*.example.org").
func matchOrigin(origin string, allowed []string) bool {
	host := extractOriginHost(origin)
	if host == "" {
		return false
	}

	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if entry == "*" || entry == origin {
			return true
		}

		entryHost := extractOriginHost(entry)
		if entryHost == "" {
			entryHost = strings.ToLower(entry)
		}

		if strings.HasPrefix(entryHost, "*.") {
			suffix := entryHost[1:]
			if strings.HasSuffix(host, suffix) || host == entryHost[2:] {
				return true
			}
			continue
		}
		if host == entryHost {
			return true
		}
	}
	return false
}

func extractOriginHost(origin string) string {
	if origin == "" {
		return ""
	}
	if !strings.Contains(origin, "://") {
		return strings.ToLower(strings.Split(origin, ":")[0])
	}
	u, err := url.Parse(origin)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
