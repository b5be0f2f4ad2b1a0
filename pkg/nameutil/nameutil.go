// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package nameutil provides display formatting for traveler names.
//
// All helpers are rune-aware so accented names ("María", "Müller")
// truncate and abbreviate correctly.
package nameutil

import (
	"strings"
	"unicode/utf8"
)

// TruncateDefault is the default maximum length used by Truncate.
const TruncateDefault = 30

// cardNameMax bounds the first-name token on small cards and lists.
const cardNameMax = 15

// ShortName formats a name as "First L." using the first given-name token
// and the initial of the surname.
//
// Returns the first name alone when the surname is empty, and "" when the
// first name is empty.
func ShortName(first, last string) string {
	if strings.TrimSpace(first) == "" {
		return ""
	}
	firstToken := strings.Fields(first)[0]
	last = strings.TrimSpace(last)
	if last == "" {
		return firstToken
	}
	r, _ := utf8.DecodeRuneInString(last)
	return firstToken + " " + strings.ToUpper(string(r)) + "."
}

// Initials returns the uppercased initials of first and last name,
// e.g. "MG" for "María" "García". Returns "??" when the first name
// is empty.
func Initials(first, last string) string {
	first = strings.TrimSpace(first)
	if first == "" {
		return "??"
	}
	fr, _ := utf8.DecodeRuneInString(first)
	out := strings.ToUpper(string(fr))
	last = strings.TrimSpace(last)
	if last != "" {
		lr, _ := utf8.DecodeRuneInString(last)
		out += strings.ToUpper(string(lr))
	}
	return out
}

// Truncate shortens a full name to at most max runes, appending "..."
// when truncation occurred. A max of 0 or less falls back to
// TruncateDefault.
func Truncate(full string, max int) string {
	if full == "" {
		return ""
	}
	if max <= 0 {
		max = TruncateDefault
	}
	runes := []rune(full)
	if len(runes) <= max {
		return full
	}
	return string(runes[:max]) + "..."
}

// CardName formats a name for small cards and lists: "First L." with
// the first-name token itself truncated when unusually long.
func CardName(first, last string) string {
	if strings.TrimSpace(first) == "" {
		return ""
	}
	firstToken := strings.Fields(first)[0]
	if utf8.RuneCountInString(firstToken) > cardNameMax {
		return string([]rune(firstToken)[:cardNameMax]) + "..."
	}
	last = strings.TrimSpace(last)
	if last == "" {
		return firstToken
	}
	r, _ := utf8.DecodeRuneInString(last)
	return firstToken + " " + strings.ToUpper(string(r)) + "."
}
