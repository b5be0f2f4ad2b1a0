// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func civil(s string) time.Time {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

// A five-day range produces days 1..5 with strictly increasing dates.
func TestUpdateItineraryFiveDays(t *testing.T) {
	start := civil("2026-10-01")
	end := civil("2026-10-05")

	days, show := updateItinerary(nil, start, end, true)

	assert.True(t, show)
	require.Len(t, days, 5)
	for i, d := range days {
		assert.Equal(t, i+1, d.Index)
		assert.Equal(t, start.AddDate(0, 0, i), d.Date)
		assert.Empty(t, d.Title)
		assert.Empty(t, d.Description)
		if i > 0 {
			assert.True(t, d.Date.After(days[i-1].Date))
		}
	}
	assert.Equal(t, "01/10/2026", days[0].DisplayDate)
	assert.Equal(t, "05/10/2026", days[4].DisplayDate)
}

func TestUpdateItinerarySingleDay(t *testing.T) {
	day := civil("2026-10-01")
	days, show := updateItinerary(nil, day, day, true)
	assert.True(t, show)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Index)
}

// An inverted range hides the itinerary without touching the entries.
func TestUpdateItineraryInvertedRangePreservesEntries(t *testing.T) {
	existing := []Day{
		{Index: 1, Title: "Llegada", Description: "Check-in"},
		{Index: 2, Title: "Ruta"},
	}

	days, show := updateItinerary(existing, civil("2026-10-10"), civil("2026-10-01"), true)

	assert.False(t, show)
	assert.Equal(t, existing, days)
}

// While the day count is unchanged, per-day edits survive a date shift.
func TestUpdateItinerarySameCountKeepsEdits(t *testing.T) {
	start := civil("2026-10-01")
	days, _ := updateItinerary(nil, start, civil("2026-10-03"), true)
	require.Len(t, days, 3)
	days[1].Title = "Museo"

	// Shift the whole range by a week: still three days.
	shifted, show := updateItinerary(days, civil("2026-10-08"), civil("2026-10-10"), true)

	assert.True(t, show)
	require.Len(t, shifted, 3)
	assert.Equal(t, "Museo", shifted[1].Title)
}

// A count change regenerates from scratch, dropping entered text.
func TestUpdateItineraryCountChangeRegenerates(t *testing.T) {
	start := civil("2026-10-01")
	days, _ := updateItinerary(nil, start, civil("2026-10-03"), true)
	require.Len(t, days, 3)
	days[0].Title = "Llegada"

	grown, show := updateItinerary(days, start, civil("2026-10-04"), true)

	assert.True(t, show)
	require.Len(t, grown, 4)
	for _, d := range grown {
		assert.Empty(t, d.Title)
	}
}

func TestUpdateItineraryUnparsableDates(t *testing.T) {
	existing := []Day{{Index: 1, Title: "Llegada"}}
	days, show := updateItinerary(existing, time.Time{}, time.Time{}, false)
	assert.False(t, show)
	assert.Equal(t, existing, days)
}
