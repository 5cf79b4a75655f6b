package urlutil

import "strings"

// reference holds the five components of a URI reference as written. The has*
// flags distinguish an empty component from an absent one ("http://h/?" keeps
// its empty query).
type reference struct {
	scheme       string
	authority    string
	path         string
	query        string
	fragment     string
	hasAuthority bool
	hasQuery     bool
	hasFragment  bool
}

// splitRef breaks s into components following RFC 3986 appendix B. Nothing is
// decoded or validated.
func splitRef(s string) reference {
	var r reference
	if i := strings.IndexByte(s, '#'); i >= 0 {
		r.fragment, r.hasFragment = s[i+1:], true
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		r.query, r.hasQuery = s[i+1:], true
		s = s[:i]
	}
	if i := strings.IndexByte(s, ':'); i > 0 && isScheme(s[:i]) {
		r.scheme = s[:i]
		s = s[i+1:]
	}
	if strings.HasPrefix(s, "//") {
		s = s[2:]
		end := strings.IndexByte(s, '/')
		if end < 0 {
			end = len(s)
		}
		r.authority, r.hasAuthority = s[:end], true
		s = s[end:]
	}
	r.path = s
	return r
}

// String recomposes the reference (RFC 3986 section 5.3).
func (r reference) String() string {
	var b strings.Builder
	if r.scheme != "" {
		b.WriteString(r.scheme)
		b.WriteByte(':')
	}
	if r.hasAuthority {
		b.WriteString("//")
		b.WriteString(r.authority)
	}
	b.WriteString(r.path)
	if r.hasQuery {
		b.WriteByte('?')
		b.WriteString(r.query)
	}
	if r.hasFragment {
		b.WriteByte('#')
		b.WriteString(r.fragment)
	}
	return b.String()
}

// resolve computes the target of ref against base (RFC 3986 section 5.2.2).
func resolve(base, ref reference) reference {
	var t reference
	switch {
	case ref.scheme != "":
		t = ref
		t.path = removeDotSegments(ref.path)
		return t
	case ref.hasAuthority:
		t.authority, t.hasAuthority = ref.authority, true
		t.path = removeDotSegments(ref.path)
		t.query, t.hasQuery = ref.query, ref.hasQuery
	case ref.path == "":
		t.path = base.path
		if ref.hasQuery {
			t.query, t.hasQuery = ref.query, true
		} else {
			t.query, t.hasQuery = base.query, base.hasQuery
		}
		t.authority, t.hasAuthority = base.authority, base.hasAuthority
	default:
		if strings.HasPrefix(ref.path, "/") {
			t.path = removeDotSegments(ref.path)
		} else {
			t.path = removeDotSegments(merge(base, ref.path))
		}
		t.query, t.hasQuery = ref.query, ref.hasQuery
		t.authority, t.hasAuthority = base.authority, base.hasAuthority
	}
	t.scheme = base.scheme
	t.fragment, t.hasFragment = ref.fragment, ref.hasFragment
	return t
}

func merge(base reference, path string) string {
	if base.hasAuthority && base.path == "" {
		return "/" + path
	}
	if i := strings.LastIndexByte(base.path, '/'); i >= 0 {
		return base.path[:i+1] + path
	}
	return path
}

// removeDotSegments implements RFC 3986 section 5.2.4.
func removeDotSegments(path string) string {
	if !strings.Contains(path, ".") {
		return path
	}
	in := path
	var out []string
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = in[2:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = in[3:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "." || in == "..":
			in = ""
		default:
			start := 0
			if in[0] == '/' {
				start = 1
			}
			end := strings.IndexByte(in[start:], '/')
			if end < 0 {
				end = len(in)
			} else {
				end += start
			}
			out = append(out, in[:end])
			in = in[end:]
		}
	}
	return strings.Join(out, "")
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
