// Package urlutil composes request URLs from server bases and operation paths,
// and offers a cheap http(s) URL heuristic.
package urlutil

import (
	"fmt"
	"strings"

	"github.com/beac0n5/OFFAT/oaserrors"
)

// DefaultRemovePrefix is stripped from every segment before it is joined.
const DefaultRemovePrefix = "/"

// Composer joins URI fragments, removing RemovePrefix from the start of each
// segment first. The zero value strips nothing; use DefaultComposer for the
// usual behaviour.
type Composer struct {
	RemovePrefix string
}

// DefaultComposer strips a single leading "/" from each segment.
var DefaultComposer = Composer{RemovePrefix: DefaultRemovePrefix}

// Join composes base and segments with DefaultComposer.
//
//	Join("https://example.com", "/v2/", "/pet/findByStatus/")
//	// https://example.com/v2/pet/findByStatus/
func Join(base string, segments ...string) (string, error) {
	return DefaultComposer.Join(base, segments...)
}

// JoinWithPrefix composes base and segments, stripping removePrefix from each
// segment.
func JoinWithPrefix(removePrefix, base string, segments ...string) (string, error) {
	return Composer{RemovePrefix: removePrefix}.Join(base, segments...)
}

// Join resolves each segment, left to right, against the URL built so far.
//
// The running URL always ends in "/" before a segment is resolved, so a
// relative segment is appended as a child path. Resolution follows RFC 3986
// section 5.2: a segment that still starts with "/" after prefix removal
// replaces the path, and an absolute URL replaces everything. With no
// segments, base is returned with a trailing "/" added when missing.
//
// Segments are kept byte for byte. Path templates such as "{petId}" and stray
// "%" signs are not escaped or decoded. Control characters and unbalanced
// brackets in an authority return an error matching oaserrors.ErrInvalidURL.
func (c Composer) Join(base string, segments ...string) (string, error) {
	if err := checkRaw("base", base); err != nil {
		return "", err
	}
	u := withTrailingSlash(base)

	for _, seg := range segments {
		seg = strings.TrimPrefix(seg, c.RemovePrefix)
		if err := checkRaw("segment", seg); err != nil {
			return "", err
		}
		u = resolve(splitRef(withTrailingSlash(u)), splitRef(seg)).String()
	}

	return u, nil
}

func checkRaw(what, s string) error {
	if i := strings.IndexFunc(s, func(r rune) bool { return r < 0x20 || r == 0x7f }); i >= 0 {
		return fmt.Errorf("urlutil: %w: %s %q: control character at offset %d", oaserrors.ErrInvalidURL, what, s, i)
	}
	if ref := splitRef(s); ref.hasAuthority && strings.Count(ref.authority, "[") != strings.Count(ref.authority, "]") {
		return fmt.Errorf("urlutil: %w: %s %q: unbalanced brackets in authority", oaserrors.ErrInvalidURL, what, s)
	}
	return nil
}

func withTrailingSlash(s string) string {
	if strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
