package serverurl

import "strings"

// urlParts is the generic scheme://netloc/path split of a URL. Query and
// fragment are dropped.
type urlParts struct {
	scheme string
	netloc string
	path   string
}

// split breaks raw apart the way a permissive urlsplit does, without
// validating the network location. url.Parse is not usable here because it
// rejects non-numeric ports, and a bad port must fall back instead of failing.
func split(raw string) urlParts {
	raw = strings.TrimLeftFunc(raw, func(r rune) bool { return r <= ' ' })
	raw = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, raw)

	var parts urlParts
	rest := raw
	if i := strings.IndexByte(raw, ':'); i > 0 && isScheme(raw[:i]) {
		parts.scheme = strings.ToLower(raw[:i])
		rest = raw[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		end := strings.IndexAny(rest, "/?#")
		if end < 0 {
			end = len(rest)
		}
		parts.netloc = rest[:end]
		rest = rest[end:]
	}

	if end := strings.IndexAny(rest, "?#"); end >= 0 {
		rest = rest[:end]
	}
	parts.path = rest
	return parts
}

// isScheme reports whether s matches ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func isScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && ('0' <= c && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}
