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

// testEngine pins the clock to 2026-03-01 so the date rules are
// deterministic: the earliest valid start date is 2026-03-08.
func testEngine() *Engine {
	return NewEngineAt(func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})
}

// infoComplete drives a fresh create-mode state through enough events
// to make the info tab valid.
func infoComplete(e *Engine) State {
	s := e.NewCreate()
	s = e.Apply(s, SetField{FieldTripName, "Ruta por los Andes"})
	s = e.Apply(s, SetField{FieldDestination, "Perú"})
	s = e.Apply(s, SetField{FieldStartDate, "2026-04-01"})
	s = e.Apply(s, SetField{FieldEndDate, "2026-04-05"})
	s = e.Apply(s, SetField{FieldDescription, "Trekking y cultura por el Valle Sagrado."})
	s = e.Apply(s, SetNumber{FieldMaxParticipants, 8})
	s = e.Apply(s, SetNumber{FieldMinAge, 18})
	s = e.Apply(s, SetNumber{FieldMaxAge, 45})
	s = e.Apply(s, AddTag{"montaña"})
	return s
}

func TestNewCreateStartsInvalid(t *testing.T) {
	e := testEngine()
	s := e.NewCreate()

	assert.Equal(t, TabInfo, s.ActiveTab)
	assert.False(t, s.Tabs.Info)
	assert.False(t, s.Tabs.Location)
	assert.False(t, s.Tabs.Itinerary)
	assert.False(t, s.ShowItinerary)
}

func TestInfoTabBecomesValid(t *testing.T) {
	e := testEngine()
	s := infoComplete(e)

	assert.True(t, s.Tabs.Info)
	assert.False(t, s.Tabs.Location, "meeting point still missing")
	assert.False(t, s.Tabs.Itinerary)
}

func TestInfoTabRequiresATag(t *testing.T) {
	e := testEngine()
	s := infoComplete(e)
	require.True(t, s.Tabs.Info)

	s = e.Apply(s, RemoveTag{"montaña"})

	assert.False(t, s.Tabs.Info)
	assert.Equal(t, CodeRequired, s.FieldErrors["etiquetas"])
}

// Invalidating the info tab cascades: location and itinerary can never
// stay valid behind an invalid earlier tab.
func TestCascadeInvalidation(t *testing.T) {
	e := testEngine()
	s := infoComplete(e)
	s = e.Apply(s, SetField{FieldMeetingPoint, "Plaza de Armas, Cusco"})
	require.True(t, s.Tabs.Info)
	require.True(t, s.Tabs.Location)
	require.True(t, s.Tabs.Itinerary)

	s = e.Apply(s, SetField{FieldTripName, ""})

	assert.False(t, s.Tabs.Info)
	assert.False(t, s.Tabs.Location)
	assert.False(t, s.Tabs.Itinerary)
}

func TestSwitchTabGating(t *testing.T) {
	e := testEngine()

	t.Run("create mode rejects forward with invalid info", func(t *testing.T) {
		s := e.NewCreate()
		require.False(t, s.Tabs.Info)

		s = e.Apply(s, SwitchTab{TabItinerary})

		assert.Equal(t, TabInfo, s.ActiveTab, "active tab unchanged on rejection")
		assert.Equal(t, warnInfoIncomplete, s.Warning)
	})

	t.Run("create mode names the first unmet precondition", func(t *testing.T) {
		s := infoComplete(e)

		s = e.Apply(s, SwitchTab{TabItinerary})

		assert.Equal(t, TabInfo, s.ActiveTab)
		assert.Equal(t, warnLocationIncomplete, s.Warning)
	})

	t.Run("create mode allows forward once prior tabs valid", func(t *testing.T) {
		s := infoComplete(e)
		s = e.Apply(s, SetField{FieldMeetingPoint, "Plaza de Armas, Cusco"})

		s = e.Apply(s, SwitchTab{TabLocation})
		assert.Equal(t, TabLocation, s.ActiveTab)

		s = e.Apply(s, SwitchTab{TabItinerary})
		assert.Equal(t, TabItinerary, s.ActiveTab)
		assert.Empty(t, s.Warning)
	})

	t.Run("backward always allowed", func(t *testing.T) {
		s := infoComplete(e)
		s = e.Apply(s, SetField{FieldMeetingPoint, "Plaza de Armas, Cusco"})
		s = e.Apply(s, SwitchTab{TabItinerary})
		require.Equal(t, TabItinerary, s.ActiveTab)

		// Break the info tab, then navigate back anyway.
		s = e.Apply(s, SetField{FieldTripName, ""})
		s = e.Apply(s, SwitchTab{TabInfo})
		assert.Equal(t, TabInfo, s.ActiveTab)
		assert.Empty(t, s.Warning)
	})

	t.Run("edit mode is ungated", func(t *testing.T) {
		s := State{Mode: ModeEdit, ActiveTab: TabInfo}
		s = e.derive(s)
		require.True(t, s.FieldErrors.Has("nombreViaje"), "empty edit form is invalid")

		s = e.Apply(s, SwitchTab{TabItinerary})
		assert.Equal(t, TabItinerary, s.ActiveTab)
		assert.Empty(t, s.Warning)
	})
}

func TestAddTagWarnings(t *testing.T) {
	e := testEngine()
	s := e.NewCreate()
	s = e.Apply(s, AddTag{"playa"})
	require.Equal(t, TagSet{"playa"}, s.Form.Tags)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "   ", "La etiqueta no puede estar vacía."},
		{"duplicate", "#Playa", "Esa etiqueta ya está añadida."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := e.Apply(s, AddTag{tt.raw})
			assert.Equal(t, tt.want, next.Warning)
			assert.Equal(t, s.Form.Tags, next.Form.Tags)
		})
	}
}

func TestWarningIsTransient(t *testing.T) {
	e := testEngine()
	s := e.NewCreate()
	s = e.Apply(s, SwitchTab{TabLocation})
	require.NotEmpty(t, s.Warning)

	s = e.Apply(s, SetField{FieldTripName, "Ruta"})
	assert.Empty(t, s.Warning)
}

func TestAddTagClearsInput(t *testing.T) {
	e := testEngine()
	s := e.NewCreate()
	s = e.Apply(s, SetField{FieldTagInput, "#Surf"})
	s = e.Apply(s, AddTag{s.Form.TagInput})

	assert.Equal(t, TagSet{"surf"}, s.Form.Tags)
	assert.Empty(t, s.Form.TagInput)
}

func TestDateRules(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name      string
		start     string
		end       string
		wantField string
		wantCode  string
	}{
		{"start before today", "2026-02-20", "2026-04-05", "fechaInicio", CodeDatePast},
		{"start inside lead time", "2026-03-05", "2026-04-05", "fechaInicio", CodeDateTooSoon},
		{"day before the earliest allowed", "2026-03-07", "2026-04-05", "fechaInicio", CodeDateTooSoon},
		{"end before start", "2026-04-10", "2026-04-05", "fechaFin", CodeEndBefore},
		{"missing start", "", "2026-04-05", "fechaInicio", CodeRequired},
		{"garbage start", "mañana", "2026-04-05", "fechaInicio", CodeRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.NewCreate()
			s = e.Apply(s, SetField{FieldStartDate, tt.start})
			s = e.Apply(s, SetField{FieldEndDate, tt.end})
			assert.Equal(t, tt.wantCode, s.FieldErrors[tt.wantField])
		})
	}

	t.Run("earliest allowed start passes", func(t *testing.T) {
		s := e.NewCreate()
		s = e.Apply(s, SetField{FieldStartDate, "2026-03-08"})
		s = e.Apply(s, SetField{FieldEndDate, "2026-03-10"})
		assert.False(t, s.FieldErrors.Has("fechaInicio"))
		assert.False(t, s.FieldErrors.Has("fechaFin"))
	})

	t.Run("earliest allowed start passes west of UTC", func(t *testing.T) {
		// A clock in a negative-offset zone must anchor "today" on the
		// local calendar day, not the shifted UTC instant.
		west := NewEngineAt(func() time.Time {
			return time.Date(2026, 3, 1, 18, 0, 0, 0, time.FixedZone("UTC-8", -8*3600))
		})
		s := west.NewCreate()
		s = west.Apply(s, SetField{FieldStartDate, "2026-03-08"})
		s = west.Apply(s, SetField{FieldEndDate, "2026-03-10"})
		assert.False(t, s.FieldErrors.Has("fechaInicio"))
		assert.False(t, s.FieldErrors.Has("fechaFin"))
	})

	t.Run("edit mode skips the lead-time rule", func(t *testing.T) {
		s := State{Mode: ModeEdit}
		s.Form.StartDate = "2026-03-02"
		s.Form.EndDate = "2026-03-04"
		s = e.derive(s)
		assert.False(t, s.FieldErrors.Has("fechaInicio"))
	})
}

func TestItineraryDerivedFromDates(t *testing.T) {
	e := testEngine()
	s := e.NewCreate()
	s = e.Apply(s, SetField{FieldStartDate, "2026-04-01"})
	assert.False(t, s.ShowItinerary, "one date is not enough")

	s = e.Apply(s, SetField{FieldEndDate, "2026-04-03"})
	assert.True(t, s.ShowItinerary)
	require.Len(t, s.Form.Itinerary, 3)

	s = e.Apply(s, SetDayField{Index: 2, Field: FieldDayTitle, Value: "Museo"})
	require.Equal(t, "Museo", s.Form.Itinerary[1].Title)

	// Inverting the range hides the list but keeps the entries.
	s = e.Apply(s, SetField{FieldEndDate, "2026-03-20"})
	assert.False(t, s.ShowItinerary)
	require.Len(t, s.Form.Itinerary, 3)
	assert.Equal(t, "Museo", s.Form.Itinerary[1].Title)

	// Restoring a range with the same count keeps the edits too.
	s = e.Apply(s, SetField{FieldEndDate, "2026-04-03"})
	assert.True(t, s.ShowItinerary)
	assert.Equal(t, "Museo", s.Form.Itinerary[1].Title)

	// Growing the range regenerates from scratch.
	s = e.Apply(s, SetField{FieldEndDate, "2026-04-05"})
	require.Len(t, s.Form.Itinerary, 5)
	assert.Empty(t, s.Form.Itinerary[1].Title)
}

func TestSetDayFieldOutOfRange(t *testing.T) {
	e := testEngine()
	s := e.NewCreate()
	s = e.Apply(s, SetField{FieldStartDate, "2026-04-01"})
	s = e.Apply(s, SetField{FieldEndDate, "2026-04-02"})
	require.Len(t, s.Form.Itinerary, 2)

	before := s.Form.Itinerary
	s = e.Apply(s, SetDayField{Index: 5, Field: FieldDayTitle, Value: "fuera"})
	assert.Equal(t, before, s.Form.Itinerary)
}
