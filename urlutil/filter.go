// Package urlutil holds the small URL predicates shared by the link checker.
package urlutil

import (
	"net/url"
	"strings"
)

// checkablePrefixes are the literal prefixes a link must start with to be
// checked over the network. The match is case-sensitive.
var checkablePrefixes = []string{"http://", "https://"}

// IsHTTPURL reports whether rawURL begins with http:// or https://.
// Anything else (mailto:, relative paths, fragments, ftp://) is not checked.
func IsHTTPURL(rawURL string) bool {
	for _, prefix := range checkablePrefixes {
		if strings.HasPrefix(rawURL, prefix) {
			return true
		}
	}
	return false
}

// HostKey returns the lowercased hostname (without port) of rawURL, used to
// bucket requests per host. Unparseable URLs yield an empty key.
func HostKey(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
