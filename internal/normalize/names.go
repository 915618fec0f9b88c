// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/pdiddy/publist/pkg/types"
)

var (
	// initialsRe matches given names already written as one or two
	// initials, e.g. "R." or "R.K.".
	initialsRe = regexp.MustCompile(`^[A-Z]\.(?:[A-Z]\.)?$`)

	// openInitialsRe matches two initials missing the final period, "R.K".
	openInitialsRe = regexp.MustCompile(`^[A-Z]\.[A-Z]$`)
)

// asciiOnly removes every rune outside the ASCII range.
var asciiOnly = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// ASCII drops non-ASCII runes from s.
func ASCII(s string) string {
	out, _, err := transform.String(asciiOnly, s)
	if err != nil {
		return s
	}
	return out
}

// givenRule abbreviates a given-name string of one particular shape.
type givenRule struct {
	name  string
	match func(given string, tokens []string) bool
	apply func(given string, tokens []string) string
}

// givenRules are tried in order; the last one matches everything.
var givenRules = []givenRule{
	{
		name:  "first-middle",
		match: func(_ string, tokens []string) bool { return len(tokens) == 2 },
		apply: func(_ string, tokens []string) string { return initial(tokens[0]) + initial(tokens[1]) },
	},
	{
		name:  "initials",
		match: func(given string, _ []string) bool { return initialsRe.MatchString(given) },
		apply: func(given string, _ []string) string { return given },
	},
	{
		name:  "open-initials",
		match: func(given string, _ []string) bool { return openInitialsRe.MatchString(given) },
		apply: func(given string, _ []string) string { return given + "." },
	},
	{
		name:  "first-letter",
		match: func(string, []string) bool { return true },
		apply: func(given string, _ []string) string { return initial(given) },
	},
}

// abbreviate returns the abbreviated given names and the rule that produced
// them.
func abbreviate(given string) (string, string) {
	if given == "" {
		return "", "empty"
	}
	tokens := strings.Fields(given)
	for _, r := range givenRules {
		if r.match(given, tokens) {
			return r.apply(given, tokens), r.name
		}
	}
	return initial(given), "first-letter"
}

// initial reduces a name to its leading character and a period.
func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(r) + "."
}

// ShortenName turns a raw "Last, First Middle[, Suffix]" author string into
// an Author with abbreviated given names. It never fails: odd shapes fall
// back to the first letter of the given names, and a string without a comma
// is taken as a bare last name.
func ShortenName(raw string) types.Author {
	last, rest, found := strings.Cut(strings.TrimSpace(raw), ",")
	a := types.Author{Last: strings.TrimSpace(ASCII(last))}
	if !found {
		return a
	}
	given, _, _ := strings.Cut(rest, ",")
	a.First, _ = abbreviate(strings.TrimSpace(given))
	return a
}
