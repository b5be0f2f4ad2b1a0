// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"
	"time"
)

func TestParseID(t *testing.T) {
	if _, err := parseID("0", "group"); err == nil {
		t.Error("zero should be rejected")
	}
	if _, err := parseID("-3", "group"); err == nil {
		t.Error("negatives should be rejected")
	}
	if _, err := parseID("abc", "group"); err == nil {
		t.Error("non-numeric input should be rejected")
	}
	id, err := parseID("42", "group")
	if err != nil || id != 42 {
		t.Errorf("expected 42, got %d (%v)", id, err)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := displayDate("2026-10-01"); got != "01/10/2026" {
		t.Errorf("expected 01/10/2026, got %s", got)
	}
	// Unparsable values pass through unchanged.
	if got := displayDate("mañana"); got != "mañana" {
		t.Errorf("expected passthrough, got %s", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("Roma", 8); got != "Roma    " {
		t.Errorf("expected padding, got %q", got)
	}
	if got := padRight("Transiberiano clásico", 10); len([]rune(got)) != 10 {
		t.Errorf("expected truncation to 10 runes, got %q", got)
	}
}

func TestAvgToInt(t *testing.T) {
	cases := map[string]int{
		"4,3":  4,
		"4.6":  5,
		"0":    0,
		"":     0,
		"alta": 0,
	}
	for in, want := range cases {
		if got := avgToInt(in); got != want {
			t.Errorf("avgToInt(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestYearsSince(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	birthdayPassed := time.Date(2000, 1, 15, 0, 0, 0, 0, time.UTC)
	if got := yearsSince(birthdayPassed, now); got != 26 {
		t.Errorf("expected 26, got %d", got)
	}
	birthdayPending := time.Date(2000, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := yearsSince(birthdayPending, now); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
}

func TestStrongPassword(t *testing.T) {
	if err := strongPassword("corta1A"); err == nil {
		t.Error("short passwords should be rejected")
	}
	if err := strongPassword("sinmayuscula1"); err == nil {
		t.Error("passwords without uppercase should be rejected")
	}
	if err := strongPassword("SinNumeros"); err == nil {
		t.Error("passwords without digits should be rejected")
	}
	if err := strongPassword("Valida123"); err != nil {
		t.Errorf("expected valid password, got %v", err)
	}
}

func TestAdultBirthDate(t *testing.T) {
	if err := adultBirthDate("2020-01-01"); err == nil {
		t.Error("minors should be rejected")
	}
	if err := adultBirthDate("15/01/2000"); err == nil {
		t.Error("wrong format should be rejected")
	}
	if err := adultBirthDate("1990-06-30"); err != nil {
		t.Errorf("expected adult accepted, got %v", err)
	}
}
