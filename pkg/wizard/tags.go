// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTags bounds the tag set size.
	MaxTags = 10

	// MaxTagRunes bounds the length of one normalized tag.
	MaxTagRunes = 20
)

// Tag rejection reasons. Each maps to a distinct user-facing warning.
var (
	ErrTagEmpty     = errors.New("la etiqueta no puede estar vacía")
	ErrTagDuplicate = errors.New("esa etiqueta ya está añadida")
	ErrTagLimit     = errors.New("máximo 10 etiquetas")
	ErrTagTooLong   = errors.New("las etiquetas no pueden superar los 20 caracteres")
)

// NormalizeTag canonicalizes raw tag input: trim whitespace, strip a
// leading '#', lowercase. "  #Playa  " becomes "playa".
func NormalizeTag(raw string) string {
	tag := strings.TrimSpace(raw)
	tag = strings.TrimPrefix(tag, "#")
	tag = strings.TrimSpace(tag)
	return strings.ToLower(tag)
}

// TagSet is an ordered collection of unique normalized tags. The zero
// value is an empty set. Mutation goes through Add and Remove only, so
// the bounds hold for any sequence of operations.
type TagSet []string

// Add normalizes raw and appends it. The returned set is the input set
// unchanged when the tag is rejected; the error says why.
func (s TagSet) Add(raw string) (TagSet, error) {
	tag := NormalizeTag(raw)
	switch {
	case tag == "":
		return s, ErrTagEmpty
	case s.Contains(tag):
		return s, ErrTagDuplicate
	case len(s) >= MaxTags:
		return s, ErrTagLimit
	case utf8.RuneCountInString(tag) > MaxTagRunes:
		return s, ErrTagTooLong
	}
	out := make(TagSet, len(s), len(s)+1)
	copy(out, s)
	return append(out, tag), nil
}

// Remove drops tag by value. Removing an absent tag is a no-op.
func (s TagSet) Remove(tag string) TagSet {
	tag = NormalizeTag(tag)
	out := make(TagSet, 0, len(s))
	for _, t := range s {
		if t != tag {
			out = append(out, t)
		}
	}
	return out
}

// Contains reports whether tag is already in the set.
func (s TagSet) Contains(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

// Strings returns the set as a plain slice for payload assembly.
func (s TagSet) Strings() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
