// Package options validates option combinations shared by the tool and CLI
// surfaces.
package options

import "errors"

// ValidateSingleInputSource returns an error unless exactly one of sources is
// true. noSourceMsg and multiSourceMsg become the error text for the zero and
// many cases.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}

	switch {
	case n == 0:
		return errors.New(noSourceMsg)
	case n > 1:
		return errors.New(multiSourceMsg)
	}
	return nil
}
