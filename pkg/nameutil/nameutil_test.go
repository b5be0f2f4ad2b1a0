// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package nameutil

import "testing"

func TestShortName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{"first and last", "María", "García", "María G."},
		{"multi-token first", "María Elena", "García", "María G."},
		{"no last", "María", "", "María"},
		{"no first", "", "García", ""},
		{"whitespace first", "   ", "García", ""},
		{"lowercase last initial", "Ana", "lópez", "Ana L."},
		{"padded last", "Ana", "  Ruiz ", "Ana R."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortName(tt.first, tt.last); got != tt.want {
				t.Errorf("ShortName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
			}
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{"both", "María", "García", "MG"},
		{"no last", "María", "", "M"},
		{"no first", "", "García", "??"},
		{"accented", "Álvaro", "ñoño", "ÁÑ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initials(tt.first, tt.last); got != tt.want {
				t.Errorf("Initials(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		full string
		max  int
		want string
	}{
		{"short untouched", "María Elena", 30, "María Elena"},
		{"exact length untouched", "abcde", 5, "abcde"},
		{"truncated", "abcdefgh", 5, "abcde..."},
		{"zero max uses default", "abc", 0, "abc"},
		{"empty", "", 10, ""},
		{"rune aware", "ááááá", 3, "ááá..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.full, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.full, tt.max, got, tt.want)
			}
		})
	}
}

func TestCardName(t *testing.T) {
	tests := []struct {
		name  string
		first string
		last  string
		want  string
	}{
		{"normal", "María", "García", "María G."},
		{"long first token", "Maximiliano-Alejandro", "Paz", "Maximiliano-Ale..."},
		{"no last", "Ana", "", "Ana"},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CardName(tt.first, tt.last); got != tt.want {
				t.Errorf("CardName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
			}
		})
	}
}
