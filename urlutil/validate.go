package urlutil

import "regexp"

// urlPattern accepts http(s) followed by a lower-case dotted host or a dotted
// quad, an optional port, and anything after. It is anchored at the start only.
var urlPattern = regexp.MustCompile(`^https?://([a-z.-]|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})+(:\d+)?.*`)

// IsValidURL reports whether s looks like an http or https URL.
// It is a pre-filter, not a validator: exotic hosts and IPv6 literals are not
// handled, and a true result does not guarantee s parses.
func IsValidURL(s string) bool {
	return urlPattern.MatchString(s)
}
