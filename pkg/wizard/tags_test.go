// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "playa", "playa"},
		{"uppercase", "PLAYA", "playa"},
		{"hash prefix", "#Peru", "peru"},
		{"surrounding spaces", "  #Playa  ", "playa"},
		{"space after hash", "# montaña", "montaña"},
		{"only hash", "#", ""},
		{"only spaces", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTag(tt.raw))
		})
	}
}

func TestTagSetRejections(t *testing.T) {
	base := TagSet{"playa", "surf"}

	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{"empty input", "   ", ErrTagEmpty},
		{"bare hash", "#", ErrTagEmpty},
		{"duplicate", "playa", ErrTagDuplicate},
		{"duplicate after normalize", "  #PLAYA ", ErrTagDuplicate},
		{"too long", strings.Repeat("a", 21), ErrTagTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := base.Add(tt.raw)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, base, out, "rejection must leave the set unchanged")
		})
	}
}

func TestTagSetLimit(t *testing.T) {
	var set TagSet
	var err error
	for i := 0; i < MaxTags; i++ {
		set, err = set.Add(fmt.Sprintf("tag%d", i))
		require.NoError(t, err)
	}
	require.Len(t, set, MaxTags)

	out, err := set.Add("desbordado")
	assert.ErrorIs(t, err, ErrTagLimit)
	assert.Equal(t, set, out)
}

// Any sequence of Add calls keeps the set free of duplicates, under
// the size bound, and under the per-tag length bound.
func TestTagSetInvariantsUnderArbitrarySequence(t *testing.T) {
	inputs := []string{
		"#Peru", "peru", " PERU ", "playa", "#playa", "", "   ", "#",
		strings.Repeat("x", 25), "montaña", "Montaña", "surf", "ruta",
		"gastronomía", "fotografía", "senderismo", "cultura", "playa norte",
		"campamento", "nieve", "desierto", "selva",
	}

	var set TagSet
	for _, raw := range inputs {
		set, _ = set.Add(raw)
	}

	assert.LessOrEqual(t, len(set), MaxTags)
	seen := make(map[string]bool)
	for _, tag := range set {
		assert.False(t, seen[tag], "duplicate %q", tag)
		seen[tag] = true
		assert.LessOrEqual(t, utf8.RuneCountInString(tag), MaxTagRunes)
		assert.Equal(t, NormalizeTag(tag), tag, "tag %q not canonical", tag)
	}
}

func TestTagSetHashAndCaseVariantsCollapse(t *testing.T) {
	var set TagSet
	var err error

	set, err = set.Add("#Peru")
	require.NoError(t, err)

	set, err = set.Add("peru")
	assert.ErrorIs(t, err, ErrTagDuplicate)

	assert.Equal(t, TagSet{"peru"}, set)
}

// Re-adding a tag's formatted version yields the canonical form once.
func TestTagSetRoundTrip(t *testing.T) {
	var set TagSet
	var err error

	set, err = set.Add("  #Playa  ")
	require.NoError(t, err)
	require.Equal(t, TagSet{"playa"}, set)

	set, err = set.Add(set[0])
	assert.ErrorIs(t, err, ErrTagDuplicate)
	assert.Equal(t, TagSet{"playa"}, set)
}

func TestTagSetRemove(t *testing.T) {
	set := TagSet{"playa", "surf", "ruta"}

	assert.Equal(t, TagSet{"playa", "ruta"}, set.Remove("surf"))
	assert.Equal(t, TagSet{"playa", "ruta"}, set.Remove("#Surf "), "remove normalizes too")
	assert.Equal(t, set, set.Remove("ausente"))
}
