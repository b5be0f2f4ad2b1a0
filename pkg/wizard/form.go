// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// dateFormat is the civil-date wire format used for start/end dates.
const dateFormat = "2006-01-02"

// Form is the wizard's editable state. Dates are civil-date strings so
// partially typed input is representable; they parse at validation
// time. Field bounds match what the backend enforces.
type Form struct {
	TripName        string `validate:"required,min=3,max=100"`
	Destination     string `validate:"required,min=2,max=100"`
	StartDate       string `validate:"-"`
	EndDate         string `validate:"-"`
	Description     string `validate:"required,min=10,max=1000"`
	MeetingPoint    string `validate:"required,min=5,max=500"`
	ImageURL        string `validate:"omitempty,http_url"`
	MinAge          int    `validate:"min=18,max=80"`
	MaxAge          int    `validate:"min=18,max=80,gtefield=MinAge"`
	MaxParticipants int    `validate:"min=2,max=20"`
	TagInput        string `validate:"-"`
	Tags            TagSet `validate:"-"`
	Itinerary       []Day  `validate:"-"`
}

// Field error codes for dates, wire-compatible with the backend.
const (
	CodeDatePast    = "fechaPasada"
	CodeDateTooSoon = "fechaMuyProxima"
	CodeEndBefore   = "fechaFinAnterior"
	CodeRequired    = "required"
)

// wireField maps Go field names to their wire names, which key the
// FieldErrors map.
var wireField = map[string]string{
	"TripName":        "nombreViaje",
	"Destination":     "destinoPrincipal",
	"StartDate":       "fechaInicio",
	"EndDate":         "fechaFin",
	"Description":     "descripcion",
	"MeetingPoint":    "puntoEncuentro",
	"ImageURL":        "imagenDestacada",
	"MinAge":          "rangoEdadMin",
	"MaxAge":          "rangoEdadMax",
	"MaxParticipants": "maxParticipantes",
}

// FieldErrors maps a wire field name to its violation code. At most
// one code per field; the first violation wins.
type FieldErrors map[string]string

// Has reports whether the field carries an error.
func (f FieldErrors) Has(field string) bool {
	_, ok := f[field]
	return ok
}

// Any reports whether any of the fields carries an error.
func (f FieldErrors) Any(fields ...string) bool {
	for _, name := range fields {
		if f.Has(name) {
			return true
		}
	}
	return false
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateFormat, s)
	return t, err == nil
}

// validateForm runs struct validation plus the date rules. Date rules
// depend on mode: the one-week lead time applies to new groups only,
// an existing group keeps its dates.
func (e *Engine) validateForm(f Form, mode Mode) FieldErrors {
	errs := FieldErrors{}

	if err := e.validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				name, known := wireField[fe.Field()]
				if !known {
					name = fe.Field()
				}
				if !errs.Has(name) {
					errs[name] = fe.Tag()
				}
			}
		}
	}

	if len(f.Tags) == 0 {
		errs["etiquetas"] = CodeRequired
	}

	today := e.today()

	start, startOK := parseDate(f.StartDate)
	switch {
	case !startOK:
		errs["fechaInicio"] = CodeRequired
	case mode == ModeCreate && start.Before(today):
		errs["fechaInicio"] = CodeDatePast
	case mode == ModeCreate && start.Before(today.AddDate(0, 0, 7)):
		errs["fechaInicio"] = CodeDateTooSoon
	}

	end, endOK := parseDate(f.EndDate)
	switch {
	case !endOK:
		errs["fechaFin"] = CodeRequired
	case startOK && end.Before(start):
		errs["fechaFin"] = CodeEndBefore
	case end.Before(today):
		errs["fechaFin"] = CodeDatePast
	}

	return errs
}

// today returns the current local calendar date at UTC midnight. Form
// dates parse as UTC midnight, so anchoring today in the same frame
// keeps the comparisons calendar-day exact in any local timezone.
func (e *Engine) today() time.Time {
	now := e.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
