// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import "time"

// displayDateFormat renders itinerary dates the way the rest of the
// product shows them (day/month/year).
const displayDateFormat = "02/01/2006"

// Day is one editable itinerary day. Index is 1-based; the text fields
// default empty and are free-form.
type Day struct {
	Index          int
	Date           time.Time
	DisplayDate    string
	Title          string
	Description    string
	DeparturePoint string
	ArrivalPoint   string
	Duration       string
}

// dayCount returns the number of calendar days between start and end
// inclusive. Both are expected at midnight.
func dayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// regenerateItinerary builds a fresh day list for the range, one entry
// per calendar day, all text fields empty.
func regenerateItinerary(start time.Time, count int) []Day {
	days := make([]Day, count)
	for i := range days {
		date := start.AddDate(0, 0, i)
		days[i] = Day{
			Index:       i + 1,
			Date:        date,
			DisplayDate: date.Format(displayDateFormat),
		}
	}
	return days
}

// updateItinerary applies the date range to the current day list.
//
// With a valid range it regenerates the list only when the day count
// changed; while the count is unchanged, existing per-day edits are
// kept as-is. An inverted range (start after end) hides the itinerary
// without touching the list, so a typo in a date does not destroy
// entered text. The returned bool is the display flag.
func updateItinerary(current []Day, start, end time.Time, ok bool) ([]Day, bool) {
	if !ok {
		return current, false
	}
	if start.After(end) {
		return current, false
	}
	count := dayCount(start, end)
	if count == len(current) {
		return current, true
	}
	return regenerateItinerary(start, count), true
}
