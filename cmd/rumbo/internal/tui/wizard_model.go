// Copyright (C) 2025 Rumbo Travel (dev@rumbo-travel.com)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package tui implements the interactive terminal views: the
// three-tab group wizard and the live chat.
//
// # Thread Safety
//
// Models are designed for single-threaded use within the bubbletea
// event loop. Do not access model state from multiple goroutines.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rumbo-travel/rumbo/pkg/api"
	"github.com/rumbo-travel/rumbo/pkg/ux"
	"github.com/rumbo-travel/rumbo/pkg/wizard"
)

// =============================================================================
// Messages
// =============================================================================

// submitDoneMsg carries the outcome of a submit attempt.
type submitDoneMsg struct {
	state  wizard.State
	status *api.StatusMessage
	err    error
}

// =============================================================================
// Fields
// =============================================================================

// fieldRef addresses one editable slot on the current tab. Day is the
// 1-based itinerary day for day fields, zero otherwise.
type fieldRef struct {
	id      wizard.FieldID
	label   string
	errKey  string
	numeric bool
	day     int
}

func infoFields() []fieldRef {
	return []fieldRef{
		{id: wizard.FieldTripName, label: "Nombre del viaje", errKey: "nombreViaje"},
		{id: wizard.FieldDestination, label: "Destino principal", errKey: "destinoPrincipal"},
		{id: wizard.FieldStartDate, label: "Fecha de inicio (AAAA-MM-DD)", errKey: "fechaInicio"},
		{id: wizard.FieldEndDate, label: "Fecha de fin (AAAA-MM-DD)", errKey: "fechaFin"},
		{id: wizard.FieldDescription, label: "Descripción", errKey: "descripcion"},
		{id: wizard.FieldMaxParticipants, label: "Plazas (2-20)", errKey: "maxParticipantes", numeric: true},
		{id: wizard.FieldMinAge, label: "Edad mínima", errKey: "rangoEdadMin", numeric: true},
		{id: wizard.FieldMaxAge, label: "Edad máxima", errKey: "rangoEdadMax", numeric: true},
		{id: wizard.FieldTagInput, label: "Etiquetas (Enter añade)", errKey: "etiquetas"},
	}
}

func locationFields() []fieldRef {
	return []fieldRef{
		{id: wizard.FieldMeetingPoint, label: "Punto de encuentro", errKey: "puntoEncuentro"},
		{id: wizard.FieldImageURL, label: "Imagen destacada (URL)", errKey: "imagenDestacada"},
	}
}

func itineraryFields(days []wizard.Day) []fieldRef {
	refs := make([]fieldRef, 0, len(days)*5)
	for _, d := range days {
		refs = append(refs,
			fieldRef{id: wizard.FieldDayTitle, label: "Título", day: d.Index},
			fieldRef{id: wizard.FieldDayDescription, label: "Descripción", day: d.Index},
			fieldRef{id: wizard.FieldDayDeparture, label: "Salida", day: d.Index},
			fieldRef{id: wizard.FieldDayArrival, label: "Llegada", day: d.Index},
			fieldRef{id: wizard.FieldDayDuration, label: "Duración", day: d.Index},
		)
	}
	return refs
}

// =============================================================================
// Model
// =============================================================================

// WizardModel drives the create/edit group flow over the pure wizard
// engine: every keystroke becomes an engine event, and the rendered
// view is a function of the resulting state.
type WizardModel struct {
	engine  *wizard.Engine
	state   wizard.State
	service wizard.GroupsService

	fields []fieldRef
	focus  int
	input  textinput.Model

	width      int
	submitting bool
	submitErr  string
	status     *api.StatusMessage
	cancelled  bool
	quitting   bool
}

// NewWizardModel builds the model for an initial wizard state.
func NewWizardModel(engine *wizard.Engine, initial wizard.State, svc wizard.GroupsService) WizardModel {
	in := textinput.New()
	in.CharLimit = 1000
	in.Width = 60
	in.Focus()

	m := WizardModel{
		engine:  engine,
		state:   initial,
		service: svc,
		input:   in,
	}
	m.fields = m.tabFields()
	m.loadFocused()
	return m
}

// Init implements tea.Model.
func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		m.state = msg.state
		switch {
		case msg.err == nil:
			m.status = msg.status
			m.quitting = true
			return m, tea.Quit
		case errors.Is(msg.err, wizard.ErrInvalidForm):
			m.submitErr = msg.err.Error()
			m.fields = m.tabFields()
			m.clampFocus()
			m.loadFocused()
		default:
			m.submitErr = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			m.quitting = true
			return m, tea.Quit

		case "tab":
			return m.switchTab(m.state.ActiveTab + 1), nil

		case "shift+tab":
			return m.switchTab(m.state.ActiveTab - 1), nil

		case "up":
			return m.moveFocus(-1), nil

		case "down":
			return m.moveFocus(1), nil

		case "enter":
			if f := m.focused(); f != nil && f.id == wizard.FieldTagInput {
				m.state = m.engine.Apply(m.state, wizard.AddTag{Raw: m.input.Value()})
				m.loadFocused()
				return m, nil
			}
			return m.moveFocus(1), nil

		case "ctrl+x":
			// Drop the most recent tag.
			if tags := m.state.Form.Tags; len(tags) > 0 {
				m.state = m.engine.Apply(m.state, wizard.RemoveTag{Tag: tags[len(tags)-1]})
			}
			return m, nil

		case "ctrl+s":
			m.submitting = true
			m.submitErr = ""
			return m, m.submitCmd()
		}
	}

	// Everything else edits the focused field through the input box.
	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m = m.applyEdit(after)
	}
	return m, cmd
}

// View implements tea.Model.
func (m WizardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.state.ActiveTab == wizard.TabItinerary && !m.state.ShowItinerary {
		b.WriteString(mutedStyle.Render("Completa las fechas del viaje para generar el itinerario."))
		b.WriteString("\n")
	}

	lastDay := 0
	for i, f := range m.fields {
		if f.day != 0 && f.day != lastDay {
			lastDay = f.day
			day := m.dayByIndex(f.day)
			b.WriteString(dayHeaderStyle.Render(
				fmt.Sprintf("Día %d — %s", f.day, day.DisplayDate)))
			b.WriteString("\n")
		}
		b.WriteString(m.renderField(i, f))
	}

	if m.state.ActiveTab == wizard.TabInfo {
		b.WriteString("\n" + renderTagChips(m.state.Form.Tags) + "\n")
	}

	if m.state.Warning != "" {
		b.WriteString("\n" + warnStyle.Render(m.state.Warning) + "\n")
	}
	if m.submitErr != "" {
		b.WriteString("\n" + errStyle.Render(m.submitErr) + "\n")
	}
	if m.submitting {
		b.WriteString("\n" + mutedStyle.Render("Guardando…") + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render(
		"↑/↓ campo · Tab pestaña · Enter siguiente · Ctrl+S guardar · Esc cancelar"))
	return b.String()
}

// Status returns the backend acknowledgement, nil when cancelled.
func (m WizardModel) Status() *api.StatusMessage { return m.status }

// Cancelled reports whether the user aborted the wizard.
func (m WizardModel) Cancelled() bool { return m.cancelled }

// =============================================================================
// Behavior
// =============================================================================

func (m WizardModel) switchTab(target wizard.Tab) WizardModel {
	if target < wizard.TabInfo || target > wizard.TabItinerary {
		return m
	}
	m.state = m.engine.Apply(m.state, wizard.SwitchTab{Target: target})
	m.fields = m.tabFields()
	m.focus = 0
	m.clampFocus()
	m.loadFocused()
	return m
}

func (m WizardModel) moveFocus(delta int) WizardModel {
	if len(m.fields) == 0 {
		return m
	}
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.loadFocused()
	return m
}

// applyEdit pushes the input box's new value into the engine.
func (m WizardModel) applyEdit(value string) WizardModel {
	f := m.focused()
	if f == nil {
		return m
	}
	var ev wizard.Event
	switch {
	case f.day != 0:
		ev = wizard.SetDayField{Index: f.day, Field: f.id, Value: value}
	case f.numeric:
		n, _ := strconv.Atoi(strings.TrimSpace(value))
		ev = wizard.SetNumber{Field: f.id, Value: n}
	default:
		ev = wizard.SetField{Field: f.id, Value: value}
	}
	m.state = m.engine.Apply(m.state, ev)

	// Date edits resize the itinerary; refresh its field list.
	if m.state.ActiveTab == wizard.TabItinerary {
		m.fields = m.tabFields()
		m.clampFocus()
	}
	return m
}

// loadFocused fills the input box from the focused field's state value.
func (m *WizardModel) loadFocused() {
	f := m.focused()
	if f == nil {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.valueOf(*f))
	m.input.CursorEnd()
}

func (m *WizardModel) clampFocus() {
	if m.focus >= len(m.fields) {
		m.focus = len(m.fields) - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

func (m *WizardModel) focused() *fieldRef {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return &m.fields[m.focus]
}

func (m WizardModel) tabFields() []fieldRef {
	switch m.state.ActiveTab {
	case wizard.TabLocation:
		return locationFields()
	case wizard.TabItinerary:
		if !m.state.ShowItinerary {
			return nil
		}
		return itineraryFields(m.state.Form.Itinerary)
	default:
		return infoFields()
	}
}

func (m WizardModel) valueOf(f fieldRef) string {
	form := m.state.Form
	if f.day != 0 {
		day := m.dayByIndex(f.day)
		switch f.id {
		case wizard.FieldDayTitle:
			return day.Title
		case wizard.FieldDayDescription:
			return day.Description
		case wizard.FieldDayDeparture:
			return day.DeparturePoint
		case wizard.FieldDayArrival:
			return day.ArrivalPoint
		case wizard.FieldDayDuration:
			return day.Duration
		}
		return ""
	}
	switch f.id {
	case wizard.FieldTripName:
		return form.TripName
	case wizard.FieldDestination:
		return form.Destination
	case wizard.FieldStartDate:
		return form.StartDate
	case wizard.FieldEndDate:
		return form.EndDate
	case wizard.FieldDescription:
		return form.Description
	case wizard.FieldMeetingPoint:
		return form.MeetingPoint
	case wizard.FieldImageURL:
		return form.ImageURL
	case wizard.FieldTagInput:
		return form.TagInput
	case wizard.FieldMinAge:
		return numText(form.MinAge)
	case wizard.FieldMaxAge:
		return numText(form.MaxAge)
	case wizard.FieldMaxParticipants:
		return numText(form.MaxParticipants)
	}
	return ""
}

func (m WizardModel) dayByIndex(index int) wizard.Day {
	for _, d := range m.state.Form.Itinerary {
		if d.Index == index {
			return d
		}
	}
	return wizard.Day{Index: index}
}

func (m WizardModel) submitCmd() tea.Cmd {
	state, engine, svc := m.state, m.engine, m.service
	return func() tea.Msg {
		next, status, err := engine.Submit(context.Background(), state, svc)
		return submitDoneMsg{state: next, status: status, err: err}
	}
}

func numText(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// =============================================================================
// Rendering
// =============================================================================

var (
	tabActiveStyle = lipgloss.NewStyle().Bold(true).
			Foreground(ux.ColorCoralBright).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ux.ColorCoralBright).
			Padding(0, 1)
	tabValidStyle   = lipgloss.NewStyle().Foreground(ux.ColorSuccess).Padding(0, 1)
	tabInvalidStyle = lipgloss.NewStyle().Foreground(ux.ColorSlate).Padding(0, 1)
	labelStyle      = lipgloss.NewStyle().Foreground(ux.ColorSeaBlue)
	dayHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ux.ColorCoral)
	mutedStyle      = lipgloss.NewStyle().Foreground(ux.ColorSlate)
	warnStyle       = lipgloss.NewStyle().Foreground(ux.ColorWarning)
	errStyle        = lipgloss.NewStyle().Foreground(ux.ColorError)
	chipStyle       = lipgloss.NewStyle().Foreground(ux.ColorSeaBlue)
)

func (m WizardModel) renderTabs() string {
	valid := map[wizard.Tab]bool{
		wizard.TabInfo:      m.state.Tabs.Info,
		wizard.TabLocation:  m.state.Tabs.Location,
		wizard.TabItinerary: m.state.Tabs.Itinerary,
	}
	parts := make([]string, 0, 3)
	for _, t := range []wizard.Tab{wizard.TabInfo, wizard.TabLocation, wizard.TabItinerary} {
		label := t.String()
		if valid[t] {
			label += " ✓"
		}
		switch {
		case t == m.state.ActiveTab:
			parts = append(parts, tabActiveStyle.Render(label))
		case valid[t]:
			parts = append(parts, tabValidStyle.Render(label))
		default:
			parts = append(parts, tabInvalidStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}

func (m WizardModel) renderField(i int, f fieldRef) string {
	var b strings.Builder
	marker := "  "
	if i == m.focus {
		marker = labelStyle.Render("❯ ")
	}
	b.WriteString(marker + labelStyle.Render(f.label) + "\n")
	if i == m.focus {
		b.WriteString("  " + m.input.View() + "\n")
	} else {
		value := m.valueOf(f)
		if value == "" {
			value = mutedStyle.Render("—")
		}
		b.WriteString("  " + value + "\n")
	}
	if f.errKey != "" {
		if code, ok := m.state.FieldErrors[f.errKey]; ok {
			b.WriteString("  " + errStyle.Render(fieldErrorText(code)) + "\n")
		}
	}
	return b.String()
}

func renderTagChips(tags wizard.TagSet) string {
	if len(tags) == 0 {
		return mutedStyle.Render("Sin etiquetas todavía.")
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = chipStyle.Render("#" + t)
	}
	return strings.Join(parts, " ") + mutedStyle.Render("  (Ctrl+X quita la última)")
}

// fieldErrorText maps a validation code to its display copy.
func fieldErrorText(code string) string {
	switch code {
	case wizard.CodeDatePast:
		return "La fecha no puede estar en el pasado."
	case wizard.CodeDateTooSoon:
		return "El viaje debe empezar con al menos 7 días de antelación."
	case wizard.CodeEndBefore:
		return "La fecha de fin es anterior a la de inicio."
	case "required":
		return "Este campo es obligatorio."
	case "min":
		return "Demasiado corto."
	case "max":
		return "Demasiado largo."
	case "gtefield":
		return "La edad máxima no puede ser menor que la mínima."
	case "http_url":
		return "Debe ser una URL válida."
	default:
		return "Valor no válido."
	}
}

// =============================================================================
// Entry point
// =============================================================================

// RunWizard runs the wizard to completion. It returns the backend
// acknowledgement, or (nil, nil) when the user cancelled.
func RunWizard(ctx context.Context, engine *wizard.Engine, initial wizard.State, svc wizard.GroupsService) (*api.StatusMessage, error) {
	p := tea.NewProgram(NewWizardModel(engine, initial, svc), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}
	model, ok := final.(WizardModel)
	if !ok || model.Cancelled() {
		return nil, nil
	}
	return model.Status(), nil
}
