// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rumbo-travel/rumbo/pkg/api"
)

// fakeGroups records calls instead of talking to the backend.
type fakeGroups struct {
	created  []api.GroupPayload
	updated  []api.GroupPayload
	updateID int
	err      error
}

func (f *fakeGroups) Create(_ context.Context, payload api.GroupPayload) (*api.StatusMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, payload)
	return &api.StatusMessage{Message: "Grupo creado"}, nil
}

func (f *fakeGroups) Update(_ context.Context, id int, payload api.GroupPayload) (*api.StatusMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updateID = id
	f.updated = append(f.updated, payload)
	return &api.StatusMessage{Message: "Grupo actualizado"}, nil
}

// submittable builds a fully valid create-mode state.
func submittable(e *Engine) State {
	s := infoComplete(e)
	s = e.Apply(s, SetField{FieldMeetingPoint, "Plaza de Armas, Cusco"})
	return s
}

func TestSubmitCreate(t *testing.T) {
	e := testEngine()
	s := submittable(e)
	svc := &fakeGroups{}

	s, status, err := e.Submit(context.Background(), s, svc)

	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "Grupo creado", status.Message)
	require.Len(t, svc.created, 1)

	payload := svc.created[0]
	assert.Equal(t, "Ruta por los Andes", payload.TripName)
	assert.Equal(t, "Perú", payload.Destination)
	assert.Equal(t, "2026-04-01", payload.StartDate)
	assert.Equal(t, "2026-04-05", payload.EndDate)
	assert.Equal(t, []string{"montaña"}, payload.Tags)
	assert.Equal(t, 8, payload.MaxParticipants)
}

// A form violation aborts before the network and resets to the info
// tab so the errors are visible.
func TestSubmitInvalidFormSkipsNetwork(t *testing.T) {
	e := testEngine()
	svc := &fakeGroups{}

	s := submittable(e)
	s = e.Apply(s, SwitchTab{TabItinerary})
	require.Equal(t, TabItinerary, s.ActiveTab)
	s = e.Apply(s, SetField{FieldDescription, "corta"})

	s, status, err := e.Submit(context.Background(), s, svc)

	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Nil(t, status)
	assert.Equal(t, TabInfo, s.ActiveTab)
	assert.Empty(t, svc.created)
	assert.Empty(t, svc.updated)
}

// Zero tags is a validation failure: no create call happens.
func TestSubmitWithoutTags(t *testing.T) {
	e := testEngine()
	svc := &fakeGroups{}

	s := submittable(e)
	s = e.Apply(s, RemoveTag{"montaña"})

	s, _, err := e.Submit(context.Background(), s, svc)

	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, TabInfo, s.ActiveTab)
	assert.Empty(t, svc.created)
}

// Only days the user actually filled in are submitted.
func TestSubmitFiltersEmptyItineraryDays(t *testing.T) {
	e := testEngine()
	svc := &fakeGroups{}

	s := submittable(e)
	require.Len(t, s.Form.Itinerary, 5)
	s = e.Apply(s, SetDayField{Index: 1, Field: FieldDayTitle, Value: "Llegada"})
	s = e.Apply(s, SetDayField{Index: 3, Field: FieldDayDescription, Value: "Ruta al mirador"})

	_, _, err := e.Submit(context.Background(), s, svc)
	require.NoError(t, err)

	require.Len(t, svc.created, 1)
	days := svc.created[0].Itinerary
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].DayNumber)
	assert.Equal(t, "Llegada", days[0].Title)
	assert.Equal(t, 3, days[1].DayNumber)
	assert.Equal(t, "Ruta al mirador", days[1].Description)
}

// A server rejection keeps the form intact for correction.
func TestSubmitServerRejection(t *testing.T) {
	e := testEngine()
	svc := &fakeGroups{err: &api.Error{Status: 422, Message: "El destino no está disponible"}}

	s := submittable(e)
	before := s.Form

	s, status, err := e.Submit(context.Background(), s, svc)

	require.Error(t, err)
	assert.Nil(t, status)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "El destino no está disponible", apiErr.UserMessage())
	assert.Equal(t, before, s.Form, "form retained after rejection")
}

func TestSubmitUpdateInEditMode(t *testing.T) {
	e := testEngine()
	svc := &fakeGroups{}
	detail := editDetail()

	s := e.NewEdit(detail)
	s = e.Apply(s, SetField{FieldTripName, "Norte de Perú"})

	_, status, err := e.Submit(context.Background(), s, svc)

	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Empty(t, svc.created)
	require.Len(t, svc.updated, 1)
	assert.Equal(t, 77, svc.updateID)
	assert.Equal(t, "Norte de Perú", svc.updated[0].TripName)
}

func editDetail() *api.GroupDetail {
	return &api.GroupDetail{
		Group: api.Group{
			ID:              77,
			TripName:        "Costa y sierra",
			MaxParticipants: 6,
			Tags:            []string{"Playa", "#surf"},
			Trip: &api.TripInfo{
				Destination:  "Máncora",
				StartDate:    "2026-05-10",
				EndDate:      "2026-05-13",
				Description:  "Cuatro días entre playa y sierra.",
				MeetingPoint: "Terminal terrestre de Piura",
				MinAge:       20,
				MaxAge:       40,
			},
		},
		Itinerary: []api.ItineraryEntry{
			{DayNumber: 2, Title: "Surf", Description: "Clases por la mañana"},
		},
	}
}

func TestNewEditPopulatesForm(t *testing.T) {
	e := testEngine()
	s := e.NewEdit(editDetail())

	assert.Equal(t, ModeEdit, s.Mode)
	assert.Equal(t, 77, s.GroupID)
	assert.Equal(t, "Costa y sierra", s.Form.TripName)
	assert.Equal(t, TagSet{"playa", "surf"}, s.Form.Tags, "stored tags are normalized")

	assert.True(t, s.Tabs.Info)
	assert.True(t, s.Tabs.Location)
	assert.True(t, s.Tabs.Itinerary)

	require.Len(t, s.Form.Itinerary, 4)
	assert.Equal(t, "Surf", s.Form.Itinerary[1].Title)
	assert.Empty(t, s.Form.Itinerary[0].Title)
	assert.True(t, s.ShowItinerary)
}
