// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ErrUnencodable is returned when assembled output cannot be represented in
// the dialect's target encoding.
var ErrUnencodable = errors.New("output cannot be encoded")

var nonASCII = runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })

var (
	// dropNonASCII is the LaTeX encoder.
	dropNonASCII = runes.Remove(nonASCII)

	// replaceNonASCII is the HTML encoder.
	replaceNonASCII = runes.Map(func(r rune) rune {
		if nonASCII.Contains(r) {
			return '?'
		}
		return r
	})
)

// checkUTF8 rejects output that is not valid UTF-8, reporting the byte
// offset of the first bad sequence.
func checkUTF8(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return fmt.Errorf("%w: invalid UTF-8 at byte %d", ErrUnencodable, i)
		}
		i += size
	}
	return nil
}

// encode validates s and applies t to reduce it to the target encoding.
// A nil transformer keeps UTF-8.
func encode(s string, t transform.Transformer) (string, error) {
	if err := checkUTF8(s); err != nil {
		return "", err
	}
	if t == nil {
		return s, nil
	}
	out, _, err := transform.String(t, s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnencodable, err)
	}
	return out, nil
}
