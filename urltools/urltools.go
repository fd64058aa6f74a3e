// Package urltools validates, formats and shortens URLs, one at a time or in batches.
package urltools

import "strings"

const (
	schemeHTTP  = "http://"
	schemeHTTPS = "https://"
	ellipsis    = "..."
)

// IsValid reports whether url has an http or https scheme followed by a host part containing a dot.
// "localhost", "ftp://example.com" and "" are not valid.
func IsValid(url string) bool {
	rest, ok := strings.CutPrefix(url, schemeHTTP)
	if !ok {
		rest, ok = strings.CutPrefix(url, schemeHTTPS)
	}
	if !ok || rest == "" {
		return false
	}

	return strings.Contains(rest, ".")
}

// Format prepends https:// unless url already starts with http:// or https://.
func Format(url string) string {
	if strings.HasPrefix(url, schemeHTTP) || strings.HasPrefix(url, schemeHTTPS) {
		return url
	}

	return schemeHTTPS + url
}

// Shorten cuts url to its first maxLength bytes and appends "..." when it is longer than maxLength.
// A negative maxLength counts as 0.
func Shorten(url string, maxLength int) string {
	maxLength = max(maxLength, 0)
	if len(url) <= maxLength {
		return url
	}

	return url[:maxLength] + ellipsis
}
