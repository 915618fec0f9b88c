// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package order sorts a publication collection newest first and numbers it.
package order

import (
	"slices"
	"strings"

	"github.com/pdiddy/publist/pkg/types"
)

// Compare orders publications ascending by (year, volume, start page). Year
// and volume compare as text.
func Compare(a, b types.Publication) int {
	if c := strings.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	if c := strings.Compare(a.Volume, b.Volume); c != 0 {
		return c
	}
	return a.StartPage.Compare(b.StartPage)
}

// Sort returns a new slice ordered newest first and assigns DisplayIndex
// from len(pubs) down to 1. Publications with equal keys keep their input
// order, so sorting a sorted collection changes nothing. The input slice is
// not modified.
func Sort(pubs []types.Publication) []types.Publication {
	out := slices.Clone(pubs)
	slices.SortStableFunc(out, func(a, b types.Publication) int {
		return Compare(b, a)
	})
	for i := range out {
		out[i].DisplayIndex = len(out) - i
	}
	return out
}
