// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"context"
	"errors"

	"github.com/rumbo-travel/rumbo/pkg/api"
)

// ErrInvalidForm is returned by Submit when client-side validation
// fails; no network call is made in that case.
var ErrInvalidForm = errors.New("el formulario contiene errores, revisa los campos marcados")

// GroupsService is the slice of the groups client Submit needs.
type GroupsService interface {
	Create(ctx context.Context, payload api.GroupPayload) (*api.StatusMessage, error)
	Update(ctx context.Context, id int, payload api.GroupPayload) (*api.StatusMessage, error)
}

// Submit revalidates the whole form and sends it.
//
// Any violation aborts before the network: the active tab resets to
// Info so the errors are visible, and ErrInvalidForm is returned. On
// success the normalized payload goes to Create or Update depending on
// mode. A server rejection is returned as-is with the form retained
// so the user can correct and resubmit.
func (e *Engine) Submit(ctx context.Context, s State, svc GroupsService) (State, *api.StatusMessage, error) {
	s = e.derive(s)
	if len(s.FieldErrors) > 0 {
		s.ActiveTab = TabInfo
		return s, nil, ErrInvalidForm
	}

	payload := buildPayload(s.Form)

	var (
		status *api.StatusMessage
		err    error
	)
	if s.Mode == ModeEdit {
		status, err = svc.Update(ctx, s.GroupID, payload)
	} else {
		status, err = svc.Create(ctx, payload)
	}
	if err != nil {
		return s, nil, err
	}
	return s, status, nil
}

// buildPayload normalizes the form into the wire shape. Itinerary days
// are included only when the user actually wrote something in them.
func buildPayload(f Form) api.GroupPayload {
	var days []api.ItineraryDay
	for _, d := range f.Itinerary {
		if d.Title == "" && d.Description == "" {
			continue
		}
		days = append(days, api.ItineraryDay{
			DayNumber:      d.Index,
			Title:          d.Title,
			Description:    d.Description,
			Duration:       d.Duration,
			DeparturePoint: d.DeparturePoint,
			ArrivalPoint:   d.ArrivalPoint,
		})
	}

	start, _ := parseDate(f.StartDate)
	end, _ := parseDate(f.EndDate)

	return api.GroupPayload{
		TripName:        f.TripName,
		Destination:     f.Destination,
		StartDate:       start.Format(dateFormat),
		EndDate:         end.Format(dateFormat),
		Description:     f.Description,
		MeetingPoint:    f.MeetingPoint,
		FeaturedImage:   f.ImageURL,
		MinAge:          f.MinAge,
		MaxAge:          f.MaxAge,
		MaxParticipants: f.MaxParticipants,
		Tags:            f.Tags.Strings(),
		Itinerary:       days,
	}
}

// NewEdit returns the wizard state for editing an existing group,
// populated from its fetched detail. All tabs are pre-valid and
// navigation is ungated; the stored itinerary entries are overlaid
// onto the day list derived from the trip's date range.
func (e *Engine) NewEdit(detail *api.GroupDetail) State {
	g := detail.Group

	form := Form{
		TripName:        g.TripName,
		MaxParticipants: g.MaxParticipants,
	}
	if g.Trip != nil {
		form.Destination = g.Trip.Destination
		form.StartDate = g.Trip.StartDate
		form.EndDate = g.Trip.EndDate
		form.Description = g.Trip.Description
		form.MeetingPoint = g.Trip.MeetingPoint
		form.ImageURL = g.Trip.FeaturedImage
		form.MinAge = g.Trip.MinAge
		form.MaxAge = g.Trip.MaxAge
	}
	for _, tag := range g.Tags {
		if tags, err := form.Tags.Add(tag); err == nil {
			form.Tags = tags
		}
	}

	if start, ok := parseDate(form.StartDate); ok {
		if end, ok := parseDate(form.EndDate); ok && !start.After(end) {
			form.Itinerary = regenerateItinerary(start, dayCount(start, end))
			for _, entry := range detail.Itinerary {
				i := entry.DayNumber - 1
				if i < 0 || i >= len(form.Itinerary) {
					continue
				}
				form.Itinerary[i].Title = entry.Title
				form.Itinerary[i].Description = entry.Description
				form.Itinerary[i].Duration = entry.Duration
				form.Itinerary[i].DeparturePoint = entry.DeparturePoint
				form.Itinerary[i].ArrivalPoint = entry.ArrivalPoint
			}
		}
	}

	s := State{
		Mode:      ModeEdit,
		GroupID:   g.ID,
		ActiveTab: TabInfo,
		Form:      form,
	}
	return e.derive(s)
}
