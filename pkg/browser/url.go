package browser

import "strings"

// NormalizeURL prefixes bare hostnames with https:// so "example.com"
// opens the way users expect. Anything already carrying a scheme, plus
// about: and data: URLs, passes through untouched.
func NormalizeURL(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.Contains(raw, "://") {
		return raw
	}
	if strings.HasPrefix(raw, "about:") || strings.HasPrefix(raw, "data:") {
		return raw
	}
	return "https://" + raw
}
