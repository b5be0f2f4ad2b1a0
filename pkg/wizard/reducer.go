// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package wizard implements the group-creation wizard as a pure state
// machine, free of any UI dependency. A State plus an Event produce
// the next State via Engine.Apply; tab validity is derived from the
// form on every transition rather than mutated imperatively, so the
// validation cascade is deterministic and testable in isolation. The
// TUI in cmd/rumbo/internal/tui renders State and translates key
// presses into Events.
package wizard

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Tab identifies one of the wizard's three tabs. They are totally
// ordered: Info before Location before Itinerary.
type Tab int

const (
	TabInfo Tab = iota
	TabLocation
	TabItinerary
)

// String returns the tab's display name.
func (t Tab) String() string {
	switch t {
	case TabInfo:
		return "información"
	case TabLocation:
		return "ubicación"
	case TabItinerary:
		return "itinerario"
	default:
		return "?"
	}
}

// Mode selects wizard behavior: creating a new group gates forward tab
// movement on validity, editing an existing one does not.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// TabState holds the derived validity of each tab. A later tab is
// never valid while an earlier one is not.
type TabState struct {
	Info      bool
	Location  bool
	Itinerary bool
}

// State is the complete wizard state. It is a value: Apply returns a
// new State and never mutates its input's slices in place.
type State struct {
	Mode      Mode
	GroupID   int // target group in edit mode
	ActiveTab Tab
	Form      Form

	// Derived on every Apply.
	Tabs          TabState
	FieldErrors   FieldErrors
	ShowItinerary bool

	// Warning carries the rejection message of the last event, empty
	// when the event was accepted. Transient: cleared on the next
	// event.
	Warning string
}

// FieldID names an editable form field for SetField/SetNumber events.
type FieldID int

const (
	FieldTripName FieldID = iota
	FieldDestination
	FieldStartDate
	FieldEndDate
	FieldDescription
	FieldMeetingPoint
	FieldImageURL
	FieldTagInput
	FieldMinAge
	FieldMaxAge
	FieldMaxParticipants
	FieldDayTitle
	FieldDayDescription
	FieldDayDeparture
	FieldDayArrival
	FieldDayDuration
)

// Event is one wizard input.
type Event interface{ isEvent() }

// SetField updates a text field.
type SetField struct {
	Field FieldID
	Value string
}

// SetNumber updates a numeric field.
type SetNumber struct {
	Field FieldID
	Value int
}

// AddTag normalizes and appends a tag.
type AddTag struct{ Raw string }

// RemoveTag drops a tag by value.
type RemoveTag struct{ Tag string }

// SwitchTab requests tab navigation.
type SwitchTab struct{ Target Tab }

// SetDayField updates a free-text field of one itinerary day
// (1-based index).
type SetDayField struct {
	Index int
	Field FieldID
	Value string
}

func (SetField) isEvent()    {}
func (SetNumber) isEvent()   {}
func (AddTag) isEvent()      {}
func (RemoveTag) isEvent()   {}
func (SwitchTab) isEvent()   {}
func (SetDayField) isEvent() {}

// Precondition warnings for rejected forward tab switches.
const (
	warnInfoIncomplete     = "Completa la información básica antes de continuar."
	warnLocationIncomplete = "Indica el punto de encuentro antes de continuar."
)

// tagWarning maps a TagSet rejection to its user-facing message.
func tagWarning(err error) string {
	switch err {
	case ErrTagEmpty:
		return "La etiqueta no puede estar vacía."
	case ErrTagDuplicate:
		return "Esa etiqueta ya está añadida."
	case ErrTagLimit:
		return "Máximo 10 etiquetas por grupo."
	case ErrTagTooLong:
		return "Las etiquetas no pueden superar los 20 caracteres."
	default:
		return "No se pudo añadir la etiqueta."
	}
}

// Engine evaluates wizard transitions. The clock is injectable so the
// date rules are testable.
type Engine struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewEngine returns an Engine on the real clock.
func NewEngine() *Engine {
	return NewEngineAt(time.Now)
}

// NewEngineAt returns an Engine that reads the current time from now.
func NewEngineAt(now func() time.Time) *Engine {
	return &Engine{validate: validator.New(), now: now}
}

// NewCreate returns the initial state for a new group.
func (e *Engine) NewCreate() State {
	s := State{Mode: ModeCreate, ActiveTab: TabInfo}
	return e.derive(s)
}

// Apply evaluates one event against the state and returns the next
// state. Rejected events leave the semantic state unchanged and set
// Warning.
func (e *Engine) Apply(s State, ev Event) State {
	s.Warning = ""

	switch ev := ev.(type) {
	case SetField:
		s.Form = setText(s.Form, ev.Field, ev.Value)

	case SetNumber:
		switch ev.Field {
		case FieldMinAge:
			s.Form.MinAge = ev.Value
		case FieldMaxAge:
			s.Form.MaxAge = ev.Value
		case FieldMaxParticipants:
			s.Form.MaxParticipants = ev.Value
		}

	case AddTag:
		tags, err := s.Form.Tags.Add(ev.Raw)
		if err != nil {
			s.Warning = tagWarning(err)
			break
		}
		s.Form.Tags = tags
		s.Form.TagInput = ""

	case RemoveTag:
		s.Form.Tags = s.Form.Tags.Remove(ev.Tag)

	case SwitchTab:
		s = e.switchTab(s, ev.Target)

	case SetDayField:
		s.Form.Itinerary = setDayText(s.Form.Itinerary, ev.Index, ev.Field, ev.Value)
	}

	return e.derive(s)
}

// switchTab applies the navigation gate. Backward movement and edit
// mode are unconditional; forward movement in create mode requires
// every prior tab to be valid, and a rejection names the first unmet
// precondition.
func (e *Engine) switchTab(s State, target Tab) State {
	if s.Mode == ModeEdit || target <= s.ActiveTab {
		s.ActiveTab = target
		return s
	}
	if target >= TabLocation && !s.Tabs.Info {
		s.Warning = warnInfoIncomplete
		return s
	}
	if target >= TabItinerary && !s.Tabs.Location {
		s.Warning = warnLocationIncomplete
		return s
	}
	s.ActiveTab = target
	return s
}

// derive recomputes everything that is a function of the form: field
// errors, tab validity (with cascade), and the itinerary day list.
func (e *Engine) derive(s State) State {
	s.FieldErrors = e.validateForm(s.Form, s.Mode)

	start, startOK := parseDate(s.Form.StartDate)
	end, endOK := parseDate(s.Form.EndDate)
	s.Form.Itinerary, s.ShowItinerary = updateItinerary(s.Form.Itinerary, start, end, startOK && endOK)

	s.Tabs = e.tabState(s)
	return s
}

// tabState derives tab validity. Info requires its six fields plus at
// least one tag; Location requires the meeting point; Itinerary has no
// fields of its own. The cascade is structural: each flag includes the
// previous one, so an invalid earlier tab forces all later tabs
// invalid.
func (e *Engine) tabState(s State) TabState {
	if s.Mode == ModeEdit {
		return TabState{Info: true, Location: true, Itinerary: true}
	}
	info := !s.FieldErrors.Any(
		"nombreViaje", "destinoPrincipal", "fechaInicio", "fechaFin",
		"maxParticipantes", "descripcion", "etiquetas",
	)
	location := info && !s.FieldErrors.Has("puntoEncuentro")
	return TabState{Info: info, Location: location, Itinerary: location}
}

func setText(f Form, field FieldID, value string) Form {
	switch field {
	case FieldTripName:
		f.TripName = value
	case FieldDestination:
		f.Destination = value
	case FieldStartDate:
		f.StartDate = value
	case FieldEndDate:
		f.EndDate = value
	case FieldDescription:
		f.Description = value
	case FieldMeetingPoint:
		f.MeetingPoint = value
	case FieldImageURL:
		f.ImageURL = value
	case FieldTagInput:
		f.TagInput = value
	}
	return f
}

func setDayText(days []Day, index int, field FieldID, value string) []Day {
	if index < 1 || index > len(days) {
		return days
	}
	out := make([]Day, len(days))
	copy(out, days)
	d := &out[index-1]
	switch field {
	case FieldDayTitle:
		d.Title = value
	case FieldDayDescription:
		d.Description = value
	case FieldDayDeparture:
		d.DeparturePoint = value
	case FieldDayArrival:
		d.ArrivalPoint = value
	case FieldDayDuration:
		d.Duration = value
	}
	return out
}
