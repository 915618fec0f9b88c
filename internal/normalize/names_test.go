// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"testing"

	"github.com/pdiddy/publist/pkg/types"
)

func TestShortenName(t *testing.T) {
	tests := []struct {
		raw  string
		want types.Author
	}{
		{"Guha, Ramit K", types.Author{First: "R.K.", Last: "Guha"}},
		{"Guha, Rajarshi K.", types.Author{First: "R.K.", Last: "Guha"}},
		{"Smith, John", types.Author{First: "J.", Last: "Smith"}},
		{"Smith, J.", types.Author{First: "J.", Last: "Smith"}},
		{"Smith, J.P.", types.Author{First: "J.P.", Last: "Smith"}},
		{"Smith, J.P", types.Author{First: "J.P.", Last: "Smith"}},
		{"Smith, J. P.", types.Author{First: "J.P.", Last: "Smith"}},
		{"Smith, John Paul George", types.Author{First: "J.", Last: "Smith"}},
		{"Smith, John, Jr.", types.Author{First: "J.", Last: "Smith"}},
		{"King, Martin Luther, Jr.", types.Author{First: "M.L.", Last: "King"}},
		{"  Wild , Dave  ", types.Author{First: "D.", Last: "Wild"}},
		{"Müller, Hans", types.Author{First: "H.", Last: "Mller"}},
		{"Consortium", types.Author{Last: "Consortium"}},
		{"Smith,", types.Author{Last: "Smith"}},
		{"", types.Author{}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ShortenName(tt.raw)
			if got != tt.want {
				t.Errorf("ShortenName(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestShortenNameTwoTokensAlwaysInitials(t *testing.T) {
	for _, given := range []string{"Ramit K", "Ann Marie", "a b", "Élodie Rose", "X Y."} {
		a := ShortenName("Last, " + given)
		if len([]rune(a.First)) != 4 || []rune(a.First)[1] != '.' || []rune(a.First)[3] != '.' {
			t.Errorf("given %q: First = %q, want two initials with periods", given, a.First)
		}
	}
}

func TestAbbreviateRule(t *testing.T) {
	tests := []struct {
		given    string
		wantRule string
	}{
		{"Ramit K", "first-middle"},
		{"R.K.", "initials"},
		{"R.", "initials"},
		{"R.K", "open-initials"},
		{"Ramit", "first-letter"},
		{"", "empty"},
	}
	for _, tt := range tests {
		t.Run(tt.given, func(t *testing.T) {
			_, rule := abbreviate(tt.given)
			if rule != tt.wantRule {
				t.Errorf("abbreviate(%q) rule = %q, want %q", tt.given, rule, tt.wantRule)
			}
		})
	}
}

func TestASCII(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"Schrödinger’s cat", "Schrdingers cat"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ASCII(tt.in); got != tt.want {
			t.Errorf("ASCII(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
